package export

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"content-exporter/core/channel"
	"content-exporter/feature/export/merge"
	"content-exporter/feature/export/models"
)

// primaryProjection is the fixed field projection for primary records.
const primaryProjection = "ID,post_title,post_name,post_date,post_status"

// authorProjection is the field projection for author records.
const authorProjection = "ID,user_login,user_email,first_name,last_name,display_name,roles"

// CommandSource fetches records by running backend CLI queries through an
// execution channel.
type CommandSource struct {
	ch          channel.Channel
	statuses    []string
	overrideKey string
}

// NewCommandSource creates a command-backed source. statuses filters the
// exported records; overrideKey names the meta attribute carrying the
// override path.
func NewCommandSource(ch channel.Channel, statuses []string, overrideKey string) *CommandSource {
	return &CommandSource{ch: ch, statuses: statuses, overrideKey: overrideKey}
}

// Primary fetches the primary records of one category and tags each line with
// the category. A channel failure or a terminated session is returned as an
// error so the caller can skip the category and continue.
func (s *CommandSource) Primary(ctx context.Context, category string) ([]string, error) {
	args := []string{
		"post", "list",
		"--post_type=" + category,
		"--fields=" + primaryProjection,
		"--format=csv",
	}
	if len(s.statuses) > 0 {
		args = append(args, "--post_status="+strings.Join(s.statuses, ","))
	}

	out, ok := s.ch.Run(ctx, args...)
	if !ok || channel.SessionTerminated(out) {
		return nil, fmt.Errorf("primary record query failed for category %q", category)
	}

	return tagLines(out, category, "ID,"), nil
}

// Overrides fetches the override records of one category: only records that
// possess the override attribute, projected to identifier and override path.
func (s *CommandSource) Overrides(ctx context.Context, category string) ([]string, error) {
	args := []string{
		"post", "list",
		"--post_type=" + category,
		"--meta_key=" + s.overrideKey,
		"--fields=ID," + s.overrideKey,
		"--format=csv",
	}
	if len(s.statuses) > 0 {
		args = append(args, "--post_status="+strings.Join(s.statuses, ","))
	}

	out, ok := s.ch.Run(ctx, args...)
	if !ok || channel.SessionTerminated(out) {
		return nil, fmt.Errorf("override query failed for category %q", category)
	}

	return dropHeader(rawLines(out), "ID,"), nil
}

// Authors fetches the author list.
func (s *CommandSource) Authors(ctx context.Context) ([]models.AuthorRecord, error) {
	out, ok := s.ch.Run(ctx, "user", "list", "--fields="+authorProjection, "--format=csv")
	if !ok || channel.SessionTerminated(out) {
		return nil, fmt.Errorf("author query failed")
	}

	var authors []models.AuthorRecord
	for _, line := range dropHeader(rawLines(out), "ID,") {
		fields := merge.SplitFields(line)
		if len(fields) < 7 {
			continue
		}
		id, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		authors = append(authors, models.AuthorRecord{
			ID:          id,
			Login:       fields[1],
			Email:       fields[2],
			FirstName:   fields[3],
			LastName:    fields[4],
			DisplayName: fields[5],
			Roles:       fields[6],
		})
	}

	return authors, nil
}

// SupportsAuthorCounts defers to the channel: a degraded remote session
// cannot sustain one query per author.
func (s *CommandSource) SupportsAuthorCounts() bool {
	return s.ch.SupportsIterativeQueries()
}

// AuthorCount counts the records one author owns across the category set,
// issued as a single query with the categories joined into one filter.
func (s *CommandSource) AuthorCount(ctx context.Context, authorID int64, categories []string) (int, error) {
	args := []string{
		"post", "list",
		"--post_type=" + strings.Join(categories, ","),
		"--author=" + strconv.FormatInt(authorID, 10),
		"--format=count",
	}
	if len(s.statuses) > 0 {
		args = append(args, "--post_status="+strings.Join(s.statuses, ","))
	}

	out, ok := s.ch.Run(ctx, args...)
	if !ok || channel.SessionTerminated(out) {
		return 0, fmt.Errorf("count query failed for author %d", authorID)
	}

	n, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil {
		return 0, fmt.Errorf("unparseable count for author %d: %w", authorID, err)
	}
	return n, nil
}

// rawLines splits command output into non-empty lines.
func rawLines(out []byte) []string {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(string(out), "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// dropHeader removes the leading header line a CSV-formatted listing emits.
func dropHeader(lines []string, headerPrefix string) []string {
	if len(lines) > 0 && strings.HasPrefix(lines[0], headerPrefix) {
		return lines[1:]
	}
	return lines
}

// tagLines drops the header and appends the category as the final field of
// every record line. Appending at the end is safe even when earlier fields
// are quoted.
func tagLines(out []byte, category, headerPrefix string) []string {
	lines := dropHeader(rawLines(out), headerPrefix)
	tagged := make([]string, 0, len(lines))
	for _, line := range lines {
		tagged = append(tagged, line+string(merge.Delimiter)+category)
	}
	return tagged
}
