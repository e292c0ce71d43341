package lookup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/logbook/internal/adapter/tracker"
	"github.com/mmcdole/logbook/internal/domain"
	"github.com/mmcdole/logbook/internal/store"
	"github.com/mmcdole/logbook/internal/testutil/fakeapi"
)

type countingRepo struct {
	calls   int
	results []domain.LookupResult
	err     error
}

func (r *countingRepo) SearchExternal(ctx context.Context, query string, category domain.Category) ([]domain.LookupResult, error) {
	r.calls++
	return r.results, r.err
}

func TestMovieAndSeriesShortCircuit(t *testing.T) {
	repo := &countingRepo{}
	svc := NewService(repo, nil, 0, nil)

	for _, cat := range []domain.Category{domain.CategoryMovie, domain.CategorySeries} {
		res, err := svc.Search(context.Background(), "Bleach", cat)
		require.NoError(t, err)
		assert.Equal(t, NoticeUnsupported, res.Notice)
		assert.Empty(t, res.Candidates)
	}
	assert.Zero(t, repo.calls)
}

func TestShortQueriesSkipped(t *testing.T) {
	repo := &countingRepo{}
	svc := NewService(repo, nil, 0, nil)

	res, err := svc.Search(context.Background(), " ab ", domain.CategoryAnime)
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.Zero(t, repo.calls)

	_, err = svc.Search(context.Background(), "abc", domain.CategoryAnime)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
}

func TestNothingFound(t *testing.T) {
	svc := NewService(&countingRepo{}, nil, 0, nil)
	res, err := svc.Search(context.Background(), "qwerty", domain.CategoryManga)
	require.NoError(t, err)
	assert.Equal(t, NoticeNothing, res.Notice)
}

func TestFailurePropagates(t *testing.T) {
	rf := &domain.RemoteFailure{Op: tracker.OpSearch, Status: 502}
	svc := NewService(&countingRepo{err: rf}, nil, 0, nil)
	_, err := svc.Search(context.Background(), "naruto", domain.CategoryAnime)
	var got *domain.RemoteFailure
	require.True(t, errors.As(err, &got))
	assert.Equal(t, "Failed to search from external api.", got.Notice())
}

func TestCachedAndRanked(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	srv.SetResults("bleach", []fakeapi.Result{
		{Title: "Bleach: Memories of Nobody"},
		{Title: "Bleach", ExternalID: "269", TotalEpisodes: 366},
	})
	client, err := tracker.NewClient(srv.URL, time.Second, nil)
	require.NoError(t, err)
	cache, err := store.OpenLookupCache(t.TempDir(), srv.URL, time.Hour)
	require.NoError(t, err)
	defer cache.Close()

	svc := NewService(client, cache, 0, nil)
	first, err := svc.Search(context.Background(), "Bleach", domain.CategoryAnime)
	require.NoError(t, err)
	require.Len(t, first.Candidates, 2)
	assert.Equal(t, "Bleach", first.Candidates[0].Title)
	assert.False(t, first.Cached)

	second, err := svc.Search(context.Background(), "bleach", domain.CategoryAnime)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Candidates, second.Candidates)
	assert.Equal(t, 1, srv.Calls("GET /search"))
}
