package export

import (
	"context"

	"content-exporter/feature/export/models"

	"go.uber.org/zap"
)

// AttachCounts fills RecordCount on every author by issuing one count query
// per author across the full category set. When the source cannot support
// iterative querying, or a count query fails mid-loop, every author gets the
// unavailable sentinel: consistency over completeness, never a mix of real
// counts and sentinels.
func AttachCounts(ctx context.Context, src Source, authors []models.AuthorRecord, categories []string, l *zap.Logger) []models.AuthorRecord {
	if !src.SupportsAuthorCounts() {
		l.Warn("per-author record counts unavailable on this channel",
			zap.String("stage", "authors"),
		)
		return markUnavailable(authors)
	}

	for i := range authors {
		count, err := src.AuthorCount(ctx, authors[i].ID, categories)
		if err != nil {
			l.Warn("author count query failed, marking all counts unavailable",
				zap.String("stage", "authors"),
				zap.Int64("author_id", authors[i].ID),
				zap.Error(err),
			)
			return markUnavailable(authors)
		}
		authors[i].RecordCount = count
	}

	return authors
}

func markUnavailable(authors []models.AuthorRecord) []models.AuthorRecord {
	for i := range authors {
		authors[i].RecordCount = models.CountUnavailable
	}
	return authors
}
