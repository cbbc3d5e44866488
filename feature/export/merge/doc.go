// Package merge reconciles primary content records with override records.
//
// The override stream is small (bounded by records that actually carry an
// override) and is fully loaded into an identifier-keyed lookup. The primary
// stream is processed row by row in a single pass, so memory stays bounded on
// large catalogs.
//
// # Parsing
//
// Input lines are split with a quote-aware field splitter: a field may be
// wrapped in quotes and contain the delimiter literally, and a doubled quote
// inside a quoted field is one literal quote. Titles are sanitized by
// physically removing delimiter characters before emission, because the
// output format has no quoting.
//
// # Failure Model
//
// Every structural failure is soft. Malformed override lines, short primary
// rows, bad identifiers and duplicate identifiers are dropped and counted in
// Stats; nothing here aborts a run. A final validation pass enforces the
// exact seven-field count on every emitted row.
package merge
