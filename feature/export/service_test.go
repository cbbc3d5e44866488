package export

import (
	"context"
	"fmt"
	"testing"

	"content-exporter/feature/export/discovery"
	"content-exporter/feature/export/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fixedStrategy makes discovery deterministic in pipeline tests.
type fixedStrategy struct{ cats []string }

func (f fixedStrategy) Name() string                                  { return "fixed" }
func (f fixedStrategy) Discover(ctx context.Context) ([]string, bool) { return f.cats, true }

// fakeSource scripts record streams per category.
type fakeSource struct {
	primary      map[string][]string
	overrides    map[string][]string
	primaryErr   map[string]error
	overridesErr map[string]error
	authors      []models.AuthorRecord
	authorsErr   error
	counts       map[int64]int
	countErr     error
	supportsIter bool
}

func (f *fakeSource) Primary(ctx context.Context, category string) ([]string, error) {
	if err := f.primaryErr[category]; err != nil {
		return nil, err
	}
	return f.primary[category], nil
}

func (f *fakeSource) Overrides(ctx context.Context, category string) ([]string, error) {
	if err := f.overridesErr[category]; err != nil {
		return nil, err
	}
	return f.overrides[category], nil
}

func (f *fakeSource) Authors(ctx context.Context) ([]models.AuthorRecord, error) {
	return f.authors, f.authorsErr
}

func (f *fakeSource) SupportsAuthorCounts() bool { return f.supportsIter }

func (f *fakeSource) AuthorCount(ctx context.Context, authorID int64, categories []string) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.counts[authorID], nil
}

func newTestService(cats []string, src Source) *Service {
	chain := discovery.NewChain(zap.NewNop(), fixedStrategy{cats})
	return NewService(chain, src, "local", zap.NewNop())
}

func TestService_Execute(t *testing.T) {
	t.Run("EndToEnd", func(t *testing.T) {
		src := &fakeSource{
			primary: map[string][]string{
				"post": {
					"1,First Post,first-post,2024-01-01,publish,post",
					"2,Second Post,second-post,2024-01-02,publish,post",
					"3,Third Post,third-post,2024-01-03,publish,post",
				},
			},
			overrides: map[string][]string{
				"post": {"2,/override-path"},
			},
		}
		svc := newTestService([]string{"post"}, src)

		run, err := svc.Execute(context.Background())
		require.NoError(t, err)

		require.Len(t, run.Rows, 3)
		withOverride := 0
		for _, row := range run.Rows {
			assert.True(t, row.Valid())
			if row[3] != "" {
				withOverride++
			}
		}
		assert.Equal(t, 1, withOverride)
		assert.Equal(t, 3, run.Summary.RecordsMerged)
		assert.Equal(t, 1, run.Summary.OverridesFound)
		assert.Equal(t, []string{"post"}, run.Summary.Categories)
		assert.NotEmpty(t, run.ID)
	})

	t.Run("CategoryFailureIsPartialSuccess", func(t *testing.T) {
		src := &fakeSource{
			primary: map[string][]string{
				"page": {"9,About,about,2024-01-01,publish,page"},
			},
			primaryErr: map[string]error{
				"post": fmt.Errorf("session dropped"),
			},
		}
		svc := newTestService([]string{"post", "page"}, src)

		run, err := svc.Execute(context.Background())
		require.NoError(t, err)

		assert.Len(t, run.Rows, 1)
		assert.Equal(t, "page", run.Rows[0][6])
		require.NotEmpty(t, run.Summary.Warnings)
		assert.Contains(t, run.Summary.Warnings[0], "post")
	})

	t.Run("OverrideFailureKeepsPrimary", func(t *testing.T) {
		src := &fakeSource{
			primary: map[string][]string{
				"post": {"1,Title,slug,2024-01-01,publish,post"},
			},
			overridesErr: map[string]error{
				"post": fmt.Errorf("timeout"),
			},
		}
		svc := newTestService([]string{"post"}, src)

		run, err := svc.Execute(context.Background())
		require.NoError(t, err)
		assert.Len(t, run.Rows, 1)
		assert.Equal(t, "", run.Rows[0][3])
		assert.NotEmpty(t, run.Summary.Warnings)
	})

	t.Run("NoPrimaryRecordsIsFatal", func(t *testing.T) {
		src := &fakeSource{
			primaryErr: map[string]error{
				"post": fmt.Errorf("down"),
				"page": fmt.Errorf("down"),
			},
		}
		svc := newTestService([]string{"post", "page"}, src)

		_, err := svc.Execute(context.Background())
		assert.Error(t, err)
	})

	t.Run("NoValidRowsIsFatal", func(t *testing.T) {
		src := &fakeSource{
			primary: map[string][]string{
				"post": {"garbage", "also,garbage"},
			},
		}
		svc := newTestService([]string{"post"}, src)

		_, err := svc.Execute(context.Background())
		assert.Error(t, err)
	})

	t.Run("CrossCategoryDeduplication", func(t *testing.T) {
		// The same record arriving from two fetch passes appears once.
		src := &fakeSource{
			primary: map[string][]string{
				"post": {"1,Title,slug,2024-01-01,publish,post"},
				"page": {"1,Title,slug,2024-01-01,publish,post"},
			},
		}
		svc := newTestService([]string{"post", "page"}, src)

		run, err := svc.Execute(context.Background())
		require.NoError(t, err)
		assert.Len(t, run.Rows, 1)
		assert.Equal(t, 1, run.Summary.DuplicatesDropped)
	})
}

func TestService_ExportAuthors(t *testing.T) {
	authors := []models.AuthorRecord{
		{ID: 1, Login: "alice"},
		{ID: 2, Login: "bob"},
	}

	t.Run("CountsAttached", func(t *testing.T) {
		src := &fakeSource{
			authors:      authors,
			supportsIter: true,
			counts:       map[int64]int{1: 10, 2: 0},
		}
		svc := newTestService([]string{"post"}, src)

		var summary Summary
		got, err := svc.ExportAuthors(context.Background(), []string{"post"}, &summary)
		require.NoError(t, err)
		assert.Equal(t, 10, got[0].RecordCount)
		assert.Equal(t, 0, got[1].RecordCount)
		assert.Equal(t, "2", summary.AuthorsExported)
	})

	t.Run("DegradedChannelAllSentinels", func(t *testing.T) {
		src := &fakeSource{
			authors:      authors,
			supportsIter: false,
		}
		svc := newTestService([]string{"post"}, src)

		var summary Summary
		got, err := svc.ExportAuthors(context.Background(), []string{"post"}, &summary)
		require.NoError(t, err)
		for _, a := range got {
			assert.Equal(t, models.CountUnavailable, a.RecordCount)
		}
		assert.Equal(t, "unavailable", summary.AuthorsExported)
	})

	t.Run("MidLoopFailureNeverMixes", func(t *testing.T) {
		src := &fakeSource{
			authors:      authors,
			supportsIter: true,
			countErr:     fmt.Errorf("session dropped"),
		}
		svc := newTestService([]string{"post"}, src)

		got, err := svc.ExportAuthors(context.Background(), []string{"post"}, nil)
		require.NoError(t, err)
		for _, a := range got {
			assert.Equal(t, models.CountUnavailable, a.RecordCount)
		}
	})
}
