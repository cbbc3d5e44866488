// Package discovery enumerates the exportable content categories.
//
// The upstream administration interface is unreliable: listing commands may
// be disabled, sessions may drop mid-output, and restricted installs reject
// filter flags. Discovery is therefore a chain of strategies attempted in
// order until one yields a non-empty validated list:
//
//  1. Structured: filtered, machine-readable category listing.
//  2. Unstructured: raw listing with client-side filtering of internal types.
//  3. Scripted: a backend-native expression filtering server-side.
//  4. Manual: the baseline categories plus operator-supplied tokens.
//
// Every result passes Validate, which trims tokens, drops empties, the leaked
// header token and the attachment category, and deduplicates preserving
// first-seen order. An exhausted chain falls back to the baseline categories;
// the category list of a run is never empty.
package discovery
