package export

import (
	"context"
	"fmt"
	"strings"

	"content-exporter/feature/export/merge"
	"content-exporter/feature/export/models"

	"gorm.io/gorm"
)

// DBSource fetches records straight from the CMS database tables. It renders
// every record into the same delimited line shape the CLI emits, so the
// merge engine runs identical logic no matter where records came from.
type DBSource struct {
	db          *gorm.DB
	prefix      string
	statuses    []string
	overrideKey string
}

// NewDBSource creates a database-backed source. prefix is the CMS table
// prefix (posts, postmeta, users, usermeta).
func NewDBSource(db *gorm.DB, prefix string, statuses []string, overrideKey string) *DBSource {
	return &DBSource{db: db, prefix: prefix, statuses: statuses, overrideKey: overrideKey}
}

// Name implements discovery.Strategy.
func (s *DBSource) Name() string {
	return "database"
}

// Discover implements discovery.Strategy by listing the distinct content
// types present in the posts table.
func (s *DBSource) Discover(ctx context.Context) ([]string, bool) {
	query := fmt.Sprintf("SELECT DISTINCT post_type FROM %sposts ORDER BY post_type", s.prefix)

	rows, err := s.db.WithContext(ctx).Raw(query).Rows()
	if err != nil {
		return nil, false
	}
	defer rows.Close()

	var types []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, false
		}
		types = append(types, t)
	}
	return types, true
}

// Primary reads the primary records of one category and renders them as
// tagged delimited lines.
func (s *DBSource) Primary(ctx context.Context, category string) ([]string, error) {
	query := fmt.Sprintf(
		"SELECT ID, post_title, post_name, post_date, post_status FROM %sposts WHERE post_type = ?", s.prefix)
	args := []any{category}
	if len(s.statuses) > 0 {
		query += " AND post_status IN ?"
		args = append(args, s.statuses)
	}

	rows, err := s.db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, fmt.Errorf("primary record query failed for category %q: %w", category, err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var (
			id                  int64
			title, slug, status string
			date                string
		)
		if err := rows.Scan(&id, &title, &slug, &date, &status); err != nil {
			return nil, fmt.Errorf("primary record scan failed for category %q: %w", category, err)
		}
		lines = append(lines, joinFields(
			fmt.Sprintf("%d", id), title, slug, date, status, category,
		))
	}

	return lines, nil
}

// Overrides reads the override records of one category: posts joined with
// the override meta attribute, skipping empty values.
func (s *DBSource) Overrides(ctx context.Context, category string) ([]string, error) {
	query := fmt.Sprintf(
		"SELECT p.ID, m.meta_value FROM %sposts p JOIN %spostmeta m ON m.post_id = p.ID"+
			" WHERE p.post_type = ? AND m.meta_key = ? AND m.meta_value <> ''",
		s.prefix, s.prefix)
	args := []any{category, s.overrideKey}
	if len(s.statuses) > 0 {
		query += " AND p.post_status IN ?"
		args = append(args, s.statuses)
	}

	rows, err := s.db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, fmt.Errorf("override query failed for category %q: %w", category, err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var (
			id   int64
			path string
		)
		if err := rows.Scan(&id, &path); err != nil {
			return nil, fmt.Errorf("override scan failed for category %q: %w", category, err)
		}
		lines = append(lines, joinFields(fmt.Sprintf("%d", id), path))
	}

	return lines, nil
}

// Authors reads the author list, resolving first/last name and the role set
// from user meta.
func (s *DBSource) Authors(ctx context.Context) ([]models.AuthorRecord, error) {
	query := fmt.Sprintf(
		"SELECT u.ID, u.user_login, u.user_email, u.display_name,"+
			" COALESCE(fn.meta_value, '') AS first_name,"+
			" COALESCE(ln.meta_value, '') AS last_name,"+
			" COALESCE(r.meta_value, '') AS roles"+
			" FROM %susers u"+
			" LEFT JOIN %susermeta fn ON fn.user_id = u.ID AND fn.meta_key = 'first_name'"+
			" LEFT JOIN %susermeta ln ON ln.user_id = u.ID AND ln.meta_key = 'last_name'"+
			" LEFT JOIN %susermeta r ON r.user_id = u.ID AND r.meta_key = '%scapabilities'",
		s.prefix, s.prefix, s.prefix, s.prefix, s.prefix)

	rows, err := s.db.WithContext(ctx).Raw(query).Rows()
	if err != nil {
		return nil, fmt.Errorf("author query failed: %w", err)
	}
	defer rows.Close()

	var authors []models.AuthorRecord
	for rows.Next() {
		var a models.AuthorRecord
		if err := rows.Scan(&a.ID, &a.Login, &a.Email, &a.DisplayName, &a.FirstName, &a.LastName, &a.Roles); err != nil {
			return nil, fmt.Errorf("author scan failed: %w", err)
		}
		authors = append(authors, a)
	}

	return authors, nil
}

// SupportsAuthorCounts is always true: the database has no session budget.
func (s *DBSource) SupportsAuthorCounts() bool {
	return true
}

// AuthorCount counts the records one author owns across the category set.
func (s *DBSource) AuthorCount(ctx context.Context, authorID int64, categories []string) (int, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %sposts WHERE post_author = ? AND post_type IN ?", s.prefix)
	args := []any{authorID, categories}
	if len(s.statuses) > 0 {
		query += " AND post_status IN ?"
		args = append(args, s.statuses)
	}

	var count int
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&count).Error; err != nil {
		return 0, fmt.Errorf("count query failed for author %d: %w", authorID, err)
	}
	return count, nil
}

// joinFields renders fields as one delimited line, quoting any field that
// contains the delimiter or a quote, exactly as the CLI's CSV output does.
func joinFields(fields ...string) string {
	quoted := make([]string, 0, len(fields))
	for _, f := range fields {
		if strings.ContainsAny(f, `,"`) {
			f = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
		}
		quoted = append(quoted, f)
	}
	return strings.Join(quoted, string(merge.Delimiter))
}
