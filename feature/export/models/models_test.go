package models_test

import (
	"testing"

	"content-exporter/feature/export/models"

	"github.com/stretchr/testify/assert"
)

func TestMergedRow_Valid(t *testing.T) {
	tests := []struct {
		name string
		row  models.MergedRow
		want bool
	}{
		{"SevenFields", models.MergedRow{"1", "Title", "slug", "", "2024-01-01", "publish", "post"}, true},
		{"SixFields", models.MergedRow{"1", "Title", "slug", "2024-01-01", "publish", "post"}, false},
		{"EightFields", models.MergedRow{"1", "Title", "slug", "", "2024-01-01", "publish", "post", "extra"}, false},
		{"Empty", models.MergedRow{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.row.Valid())
		})
	}
}

func TestColumns(t *testing.T) {
	cols := models.Columns()
	assert.Len(t, cols, models.MergedFieldCount)
	assert.Equal(t, []string{"ID", "Title", "Slug", "Override", "Date", "Status", "Category"}, cols)
}

func TestAuthorRecord_CountLabel(t *testing.T) {
	assert.Equal(t, "12", models.AuthorRecord{RecordCount: 12}.CountLabel())
	assert.Equal(t, "0", models.AuthorRecord{}.CountLabel())
	assert.Equal(t, "unavailable", models.AuthorRecord{RecordCount: models.CountUnavailable}.CountLabel())
}
