package merge

import (
	"strconv"
	"strings"

	"content-exporter/feature/export/models"

	"go.uber.org/zap"
)

// minPrimaryFields is the minimum parsed field count for a primary row:
// identifier, title, slug, date, status, category.
const minPrimaryFields = 6

// Stats counts the soft failures absorbed while merging one run. Dropped
// units are counted, never reported as errors.
type Stats struct {
	// OverridesLoaded is the number of entries in the override lookup.
	OverridesLoaded int
	// MalformedOverrides counts override lines skipped for wrong field count.
	MalformedOverrides int
	// RowsMerged is the number of rows that survived merge and validation.
	RowsMerged int
	// RowsDropped counts primary rows dropped for structural reasons.
	RowsDropped int
	// DuplicatesDropped counts repeated identifiers skipped during the merge.
	DuplicatesDropped int
	// Overridden counts merged rows that carry a non-empty override path.
	Overridden int
}

// LoadOverrides parses raw override lines into an identifier-to-path lookup.
// Expected shape per line: identifier, override path. Malformed lines are
// skipped and counted. A repeated identifier keeps the last value seen.
func LoadOverrides(lines []string, stats *Stats) map[int64]string {
	lookup := make(map[int64]string)

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := SplitFields(line)
		if len(fields) != 2 {
			stats.MalformedOverrides++
			continue
		}

		id, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
		if err != nil || id <= 0 {
			stats.MalformedOverrides++
			continue
		}

		path := strings.TrimSpace(fields[1])
		if path == "" {
			// Present in the stream but without a value: no override
			continue
		}

		// Last write wins on repeated identifiers
		lookup[id] = path
	}

	stats.OverridesLoaded = len(lookup)
	return lookup
}

// Merge streams the primary lines once against the override lookup and emits
// one seven-field row per structurally valid primary record. Rows with too
// few fields or a non-positive identifier are dropped and counted; an
// identifier already emitted is skipped so the output stays key-preserving
// across categories and fetch passes.
func Merge(primary []string, overrides map[int64]string, stats *Stats, l *zap.Logger) []models.MergedRow {
	seen := make(map[int64]struct{}, len(primary))
	rows := make([]models.MergedRow, 0, len(primary))

	for _, line := range primary {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := SplitFields(line)
		if len(fields) < minPrimaryFields {
			stats.RowsDropped++
			l.Debug("primary row dropped: field count",
				zap.String("stage", "merge"),
				zap.Int("fields", len(fields)),
			)
			continue
		}

		id, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
		if err != nil || id <= 0 {
			stats.RowsDropped++
			l.Debug("primary row dropped: bad identifier",
				zap.String("stage", "merge"),
				zap.String("identifier", fields[0]),
			)
			continue
		}

		if _, dup := seen[id]; dup {
			stats.DuplicatesDropped++
			continue
		}
		seen[id] = struct{}{}

		override := overrides[id]
		if override != "" {
			stats.Overridden++
		}

		rows = append(rows, models.MergedRow{
			strconv.FormatInt(id, 10),
			SanitizeTitle(fields[1]),
			fields[2],
			override,
			fields[3],
			fields[4],
			fields[5],
		})
	}

	return rows
}

// Validate enforces the exact output field count on every emitted row. Any
// row not matching is dropped silently and counted; corrupt rows must never
// reach the renderer.
func Validate(rows []models.MergedRow, stats *Stats) []models.MergedRow {
	valid := make([]models.MergedRow, 0, len(rows))
	for _, row := range rows {
		if !row.Valid() {
			stats.RowsDropped++
			continue
		}
		valid = append(valid, row)
	}

	stats.RowsMerged = len(valid)
	return valid
}
