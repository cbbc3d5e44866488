// Package models defines the record types flowing through the export
// pipeline: primary content records, override records keyed by the same
// identifiers, the fixed seven-field merged output row, and author records.
//
// All records are transient. They are fetched fresh each run, held only while
// one category is being processed, and discarded after the merged dataset is
// handed to a renderer.
package models
