package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/logbook/internal/domain"
)

func TestLookupCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	results := []domain.LookupResult{{Title: "Bleach", ExternalID: "269", TotalEpisodes: "366"}}

	c, err := OpenLookupCache(dir, "http://127.0.0.1:5000", time.Hour)
	require.NoError(t, err)
	require.NoError(t, c.SaveLookup(domain.CategoryAnime, "Bleach", results))
	require.NoError(t, c.Close())

	// Reopen to read from disk rather than memory.
	c, err = OpenLookupCache(dir, "http://127.0.0.1:5000/", time.Hour)
	require.NoError(t, err)
	defer c.Close()

	got, ok := c.GetLookup(domain.CategoryAnime, "  bleach ")
	require.True(t, ok)
	assert.Equal(t, results, got)

	_, ok = c.GetLookup(domain.CategoryManga, "bleach")
	assert.False(t, ok)
}

func TestLookupCacheExpires(t *testing.T) {
	c, err := OpenLookupCache("", "", time.Minute)
	require.NoError(t, err)

	now := time.Unix(1_700_000_000, 0)
	c.now = func() time.Time { return now }
	require.NoError(t, c.SaveLookup(domain.CategoryBook, "dune", []domain.LookupResult{{Title: "Dune"}}))

	_, ok := c.GetLookup(domain.CategoryBook, "dune")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = c.GetLookup(domain.CategoryBook, "dune")
	assert.False(t, ok)
}

func TestLookupCachePurge(t *testing.T) {
	c, err := OpenLookupCache(t.TempDir(), "", 0)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.SaveLookup(domain.CategoryAnime, "one piece", []domain.LookupResult{{Title: "One Piece"}}))
	require.NoError(t, c.Purge())
	_, ok := c.GetLookup(domain.CategoryAnime, "one piece")
	assert.False(t, ok)
}
