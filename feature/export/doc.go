// Package export implements the content export pipeline.
//
// One run flows through four stages, sequentially because the remote channel
// has a bounded session budget:
//
//  1. Discovery: the category chain produces the immutable working set.
//  2. Fetch: per category, a primary record query and an override query are
//     issued through a Source. Partial success is a normal outcome; a failed
//     category is skipped with a warning.
//  3. Reconciliation: the merge engine joins primary records with the
//     override lookup into validated seven-field rows.
//  4. Reporting: the Summary carries counts and warnings for the CLI layer;
//     only run-wide emptiness (no categories, no primary records, no rows)
//     fails a run.
//
// Two Source implementations exist: CommandSource issues backend CLI queries
// through a core/channel execution channel, DBSource reads the CMS tables
// directly through GORM. Both render records into the same delimited line
// shape, so the reconciliation logic is identical for every mode.
//
// Author export is a separate operation: AttachCounts issues one count query
// per author, or marks every count unavailable when the channel is degraded.
package export
