// Package render turns the validated dataset into deliverable artifacts.
//
// The core pipeline's only obligation towards renderers is handing over the
// complete validated row set plus the seven column names in fixed order; the
// Dataset type is that contract. CSVRenderer is the built-in renderer: it
// writes to a scratch file in the output directory and promotes the result
// with a rename, so an interrupted run leaves no partial output under the
// final name. Spreadsheet renderers with URL-construction formulas live
// outside this module and consume the same Dataset.
//
// Publisher optionally uploads a finished export to S3-compatible object
// storage.
package render
