package export

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"content-exporter/core/logger"
	"content-exporter/feature/export/discovery"
	"content-exporter/feature/export/merge"
	"content-exporter/feature/export/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service is the pipeline controller. It sequences discovery, fetching and
// reconciliation, owns the run's working state, and exposes the validated
// dataset plus a summary to renderers.
type Service struct {
	chain       *discovery.Chain
	source      Source
	channelMode string
	logger      *zap.Logger
}

// Run holds the result of one export run.
type Run struct {
	// ID is the run identifier, present on every correlated log line.
	ID string
	// Categories is the immutable discovered working set.
	Categories []string
	// Rows is the validated merged dataset, seven fields per row.
	Rows []models.MergedRow
	// Summary is the structured run report.
	Summary Summary
}

// NewService creates the pipeline controller.
func NewService(chain *discovery.Chain, source Source, channelMode string, l *zap.Logger) *Service {
	return &Service{chain: chain, source: source, channelMode: channelMode, logger: l}
}

// Execute runs the pipeline once. Categories are processed sequentially; a
// category whose primary query fails is skipped with a warning, a failed
// override query degrades that category to no overrides. The run errors only
// on run-wide emptiness: zero categories, zero primary records, or zero
// validated rows.
func (s *Service) Execute(ctx context.Context) (*Run, error) {
	runID := uuid.NewString()
	l := logger.WithRunID(s.logger, runID)

	summary := Summary{RunID: runID, ChannelMode: s.channelMode}

	categories := s.chain.Discover(ctx)
	if len(categories) == 0 {
		return nil, fmt.Errorf("discovery produced no categories")
	}
	summary.Categories = categories
	summary.CategoriesDiscovered = len(categories)

	// Append-only accumulators, owned by this single thread
	var primary, overrides []string

	for _, category := range categories {
		p, err := s.source.Primary(ctx, category)
		if err != nil {
			l.Warn("category skipped",
				zap.String("stage", "fetch"),
				zap.String("category", category),
				zap.Error(err),
			)
			summary.Warn("category %q skipped: %v", category, err)
			continue
		}
		primary = append(primary, p...)

		o, err := s.source.Overrides(ctx, category)
		if err != nil {
			l.Warn("override fetch failed, continuing without overrides",
				zap.String("stage", "fetch"),
				zap.String("category", category),
				zap.Error(err),
			)
			summary.Warn("overrides for category %q unavailable: %v", category, err)
			continue
		}
		overrides = append(overrides, o...)
	}

	if len(primary) == 0 {
		return nil, fmt.Errorf("no primary records fetched across %d categories", len(categories))
	}

	var stats merge.Stats
	lookup := merge.LoadOverrides(overrides, &stats)
	rows := merge.Validate(merge.Merge(primary, lookup, &stats, l), &stats)

	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows survived reconciliation")
	}

	if stats.MalformedOverrides > 0 {
		summary.Warn("%d malformed override lines skipped", stats.MalformedOverrides)
	}
	if stats.RowsDropped > 0 {
		summary.Warn("%d structurally invalid rows dropped", stats.RowsDropped)
	}

	summary.GeneratedAt = time.Now().UTC()
	summary.RecordsMerged = stats.RowsMerged
	summary.OverridesFound = stats.OverridesLoaded
	summary.RowsDropped = stats.RowsDropped
	summary.MalformedOverrides = stats.MalformedOverrides
	summary.DuplicatesDropped = stats.DuplicatesDropped

	l.Info("export run complete", summary.Fields()...)

	return &Run{
		ID:         runID,
		Categories: categories,
		Rows:       rows,
		Summary:    summary,
	}, nil
}

// ExportAuthors fetches the author list and attaches per-author counts
// across the given categories. The summary is updated with the author count
// or the unavailable marker.
func (s *Service) ExportAuthors(ctx context.Context, categories []string, summary *Summary) ([]models.AuthorRecord, error) {
	authors, err := s.source.Authors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch authors: %w", err)
	}

	authors = AttachCounts(ctx, s.source, authors, categories, s.logger)

	if summary != nil {
		if len(authors) > 0 && authors[0].RecordCount == models.CountUnavailable {
			summary.AuthorsExported = "unavailable"
		} else {
			summary.AuthorsExported = strconv.Itoa(len(authors))
		}
	}

	return authors, nil
}
