package export

import (
	"context"

	"content-exporter/feature/export/models"
)

// Source yields the raw record streams the pipeline consumes. The command
// source runs backend CLI queries through an execution channel; the database
// source reads the CMS tables directly. Either way the pipeline logic is
// identical.
type Source interface {
	// Primary returns the raw primary-record lines for one category. Each
	// line carries the fixed projection (identifier, title, slug, date,
	// status) with the category appended as its final field.
	Primary(ctx context.Context, category string) ([]string, error)

	// Overrides returns the raw override lines (identifier, override path)
	// for one category, filtered to records that possess the override
	// attribute.
	Overrides(ctx context.Context, category string) ([]string, error)

	// Authors returns the author records, without counts attached.
	Authors(ctx context.Context) ([]models.AuthorRecord, error)

	// SupportsAuthorCounts reports whether per-author count queries are safe
	// on this source.
	SupportsAuthorCounts() bool

	// AuthorCount counts the records one author owns across the given
	// category set.
	AuthorCount(ctx context.Context, authorID int64, categories []string) (int, error)
}
