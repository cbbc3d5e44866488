package render

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"content-exporter/feature/export/models"
)

// Dataset is the complete, validated result handed to a renderer: the seven
// column names in fixed order, the merged rows, and the base domain a
// spreadsheet renderer needs for URL construction.
type Dataset struct {
	// BaseDomain is the site domain for renderers that build URLs.
	BaseDomain string
	// Header is the column names in their fixed order.
	Header []string
	// Rows is the validated merged dataset.
	Rows []models.MergedRow
}

// Renderer lays out a dataset into a file and returns its path.
type Renderer interface {
	Render(d Dataset) (path string, err error)
}

// CSVRenderer writes the dataset as a CSV file. Rows go to a scratch file
// first and are promoted with a rename once complete, so an interrupted run
// never leaves a partial export under the final name.
type CSVRenderer struct {
	dir  string
	name string
}

// NewCSVRenderer creates a renderer writing <dir>/<name>.
func NewCSVRenderer(dir, name string) *CSVRenderer {
	return &CSVRenderer{dir: dir, name: name}
}

// Render writes header and rows and promotes the scratch file.
func (r *CSVRenderer) Render(d Dataset) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	scratch, err := os.CreateTemp(r.dir, "."+r.name+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create scratch file: %w", err)
	}
	defer os.Remove(scratch.Name())

	w := csv.NewWriter(scratch)
	if err := w.Write(d.Header); err != nil {
		scratch.Close()
		return "", fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range d.Rows {
		if err := w.Write(row); err != nil {
			scratch.Close()
			return "", fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		scratch.Close()
		return "", fmt.Errorf("failed to flush export: %w", err)
	}
	if err := scratch.Close(); err != nil {
		return "", fmt.Errorf("failed to close scratch file: %w", err)
	}

	final := filepath.Join(r.dir, r.name)
	if err := os.Rename(scratch.Name(), final); err != nil {
		return "", fmt.Errorf("failed to promote export: %w", err)
	}

	return final, nil
}

// WriteAuthorsCSV writes the author records, using the scratch-then-promote
// pattern of CSVRenderer.
func WriteAuthorsCSV(dir, name string, authors []models.AuthorRecord) (string, error) {
	header := []string{"ID", "Login", "Email", "FirstName", "LastName", "DisplayName", "Roles", "RecordCount"}
	rows := make([]models.MergedRow, 0, len(authors))
	for _, a := range authors {
		rows = append(rows, models.MergedRow{
			fmt.Sprintf("%d", a.ID),
			a.Login,
			a.Email,
			a.FirstName,
			a.LastName,
			a.DisplayName,
			a.Roles,
			a.CountLabel(),
		})
	}

	r := NewCSVRenderer(dir, name)
	return r.Render(Dataset{Header: header, Rows: rows})
}
