package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// SummaryFileName is the name the run summary is persisted under, next to
// the export itself.
const SummaryFileName = "summary.json"

// Summary is the structured report of one export run. The CLI layer uses it
// for display and exit-code decisions; the serve command republishes it.
type Summary struct {
	// RunID identifies the run across log lines and artifacts.
	RunID string `json:"run_id"`
	// GeneratedAt is when the run finished.
	GeneratedAt time.Time `json:"generated_at"`
	// ChannelMode records which channel mode produced the run.
	ChannelMode string `json:"channel_mode"`
	// Categories is the discovered category working set, order-stable.
	Categories []string `json:"categories"`
	// CategoriesDiscovered is len(Categories).
	CategoriesDiscovered int `json:"categories_discovered"`
	// RecordsMerged counts the validated output rows.
	RecordsMerged int `json:"records_merged"`
	// OverridesFound counts the entries loaded into the override lookup.
	OverridesFound int `json:"overrides_found"`
	// RowsDropped counts primary rows dropped for structural reasons.
	RowsDropped int `json:"rows_dropped"`
	// MalformedOverrides counts override lines skipped during loading.
	MalformedOverrides int `json:"malformed_overrides"`
	// DuplicatesDropped counts repeated identifiers skipped in the merge.
	DuplicatesDropped int `json:"duplicates_dropped"`
	// AuthorsExported is the author count, or "unavailable" when the channel
	// could not support per-author counting. Empty when authors were not
	// requested.
	AuthorsExported string `json:"authors_exported,omitempty"`
	// Warnings lists every partial failure absorbed during the run.
	Warnings []string `json:"warnings,omitempty"`
}

// Warn records a partial-failure warning in the summary.
func (s *Summary) Warn(format string, args ...any) {
	s.Warnings = append(s.Warnings, fmt.Sprintf(format, args...))
}

// Fields renders the summary as zap fields for the run report log line.
func (s *Summary) Fields() []zap.Field {
	fields := []zap.Field{
		zap.String("run_id", s.RunID),
		zap.Int("categories", s.CategoriesDiscovered),
		zap.Int("records_merged", s.RecordsMerged),
		zap.Int("overrides_found", s.OverridesFound),
		zap.Int("rows_dropped", s.RowsDropped),
		zap.Int("duplicates_dropped", s.DuplicatesDropped),
		zap.Int("warnings", len(s.Warnings)),
	}
	if s.AuthorsExported != "" {
		fields = append(fields, zap.String("authors_exported", s.AuthorsExported))
	}
	return fields
}

// WriteFile persists the summary as JSON in the given directory.
func (s *Summary) WriteFile(dir string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, SummaryFileName), data, 0o644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// LoadSummary reads a previously persisted run summary from the directory.
func LoadSummary(dir string) (*Summary, error) {
	data, err := os.ReadFile(filepath.Join(dir, SummaryFileName))
	if err != nil {
		return nil, fmt.Errorf("failed to read summary: %w", err)
	}
	var s Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode summary: %w", err)
	}
	return &s, nil
}
