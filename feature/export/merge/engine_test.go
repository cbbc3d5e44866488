package merge

import (
	"testing"

	"content-exporter/feature/export/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadOverrides(t *testing.T) {
	t.Run("Basic", func(t *testing.T) {
		var stats Stats
		lookup := LoadOverrides([]string{
			"7,/better-path",
			"9,/another",
		}, &stats)

		assert.Equal(t, map[int64]string{7: "/better-path", 9: "/another"}, lookup)
		assert.Equal(t, 2, stats.OverridesLoaded)
		assert.Zero(t, stats.MalformedOverrides)
	})

	t.Run("LastWriteWins", func(t *testing.T) {
		var stats Stats
		lookup := LoadOverrides([]string{"7,/a", "7,/b"}, &stats)

		assert.Equal(t, "/b", lookup[7])
		assert.Equal(t, 1, stats.OverridesLoaded)
	})

	t.Run("MalformedLinesSkipped", func(t *testing.T) {
		var stats Stats
		lookup := LoadOverrides([]string{
			"7,/keep",
			"not-a-record",
			"8,/x,extra-field",
			"abc,/bad-id",
			"-3,/negative",
		}, &stats)

		assert.Equal(t, map[int64]string{7: "/keep"}, lookup)
		assert.Equal(t, 4, stats.MalformedOverrides)
	})

	t.Run("EmptyPathMeansNoOverride", func(t *testing.T) {
		var stats Stats
		lookup := LoadOverrides([]string{"7, ", "", "8,/real"}, &stats)

		assert.Equal(t, map[int64]string{8: "/real"}, lookup)
		assert.Zero(t, stats.MalformedOverrides)
	})

	t.Run("QuotedPathWithComma", func(t *testing.T) {
		var stats Stats
		lookup := LoadOverrides([]string{`7,"/odd,path"`}, &stats)

		assert.Equal(t, "/odd,path", lookup[7])
	})
}

func TestMerge(t *testing.T) {
	l := zap.NewNop()

	t.Run("EndToEnd", func(t *testing.T) {
		// Three primary rows, one matching override: three rows out,
		// exactly one with a non-empty override path, all seven fields.
		var stats Stats
		overrides := LoadOverrides([]string{"2,/override-path"}, &stats)

		rows := Validate(Merge([]string{
			"1,First Post,first-post,2024-01-01,publish,post",
			"2,Second Post,second-post,2024-01-02,publish,post",
			"3,Third Post,third-post,2024-01-03,draft,post",
		}, overrides, &stats, l), &stats)

		require.Len(t, rows, 3)
		withOverride := 0
		for _, row := range rows {
			assert.True(t, row.Valid())
			if row[3] != "" {
				withOverride++
			}
		}
		assert.Equal(t, 1, withOverride)
		assert.Equal(t, "/override-path", rows[1][3])
		assert.Equal(t, 3, stats.RowsMerged)
		assert.Equal(t, 1, stats.Overridden)
	})

	t.Run("QuotedTitleSanitized", func(t *testing.T) {
		var stats Stats
		rows := Merge([]string{
			`5,"Sleep, Work, and COVID-19",sleep-work-covid,2024-01-01,publish,post`,
		}, nil, &stats, l)

		require.Len(t, rows, 1)
		assert.Equal(t, "Sleep Work and COVID-19", rows[0][1])
		assert.Equal(t, "sleep-work-covid", rows[0][2])
	})

	t.Run("ShortRowsDropped", func(t *testing.T) {
		var stats Stats
		rows := Merge([]string{
			"1,Title,slug,2024-01-01,publish,post",
			"2,missing,fields",
			"",
		}, nil, &stats, l)

		assert.Len(t, rows, 1)
		assert.Equal(t, 1, stats.RowsDropped)
	})

	t.Run("BadIdentifierDropped", func(t *testing.T) {
		var stats Stats
		rows := Merge([]string{
			"ID,Title,Slug,Date,Status,Category",
			"0,Zero,zero,2024-01-01,publish,post",
			"-5,Negative,neg,2024-01-01,publish,post",
			"9,Fine,fine,2024-01-01,publish,post",
		}, nil, &stats, l)

		require.Len(t, rows, 1)
		assert.Equal(t, "9", rows[0][0])
		assert.Equal(t, 3, stats.RowsDropped)
	})

	t.Run("KeyPreserving", func(t *testing.T) {
		// The same identifier arriving twice (exact duplicate across fetch
		// passes) must appear once in the output.
		var stats Stats
		rows := Merge([]string{
			"4,Title,slug,2024-01-01,publish,post",
			"4,Title,slug,2024-01-01,publish,post",
		}, nil, &stats, l)

		assert.Len(t, rows, 1)
		assert.Equal(t, 1, stats.DuplicatesDropped)
	})
}

func TestValidate(t *testing.T) {
	var stats Stats
	rows := Validate([]models.MergedRow{
		{"1", "Title", "slug", "", "2024-01-01", "publish", "post"},
		{"2", "short"},
	}, &stats)

	assert.Len(t, rows, 1)
	assert.Equal(t, 1, stats.RowsDropped)
	assert.Equal(t, 1, stats.RowsMerged)
}
