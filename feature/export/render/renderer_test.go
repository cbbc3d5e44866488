package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"content-exporter/feature/export/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRenderer_Render(t *testing.T) {
	dir := t.TempDir()
	r := NewCSVRenderer(dir, "export.csv")

	path, err := r.Render(Dataset{
		BaseDomain: "https://example.com",
		Header:     models.Columns(),
		Rows: []models.MergedRow{
			{"1", "First Post", "first-post", "", "2024-01-01", "publish", "post"},
			{"2", "Second Post", "second-post", "/override", "2024-01-02", "publish", "post"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "export.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Title,Slug,Override,Date,Status,Category", lines[0])
	assert.Equal(t, "2,Second Post,second-post,/override,2024-01-02,publish,post", lines[2])

	// No scratch files survive a completed render
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCSVRenderer_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")
	r := NewCSVRenderer(dir, "export.csv")

	path, err := r.Render(Dataset{Header: models.Columns()})
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestWriteAuthorsCSV(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteAuthorsCSV(dir, "authors.csv", []models.AuthorRecord{
		{ID: 1, Login: "alice", Email: "alice@example.com", DisplayName: "Alice", Roles: "editor", RecordCount: 7},
		{ID: 2, Login: "bob", Email: "bob@example.com", DisplayName: "Bob", Roles: "author", RecordCount: models.CountUnavailable},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[1], ",7"))
	assert.True(t, strings.HasSuffix(lines[2], ",unavailable"))
}
