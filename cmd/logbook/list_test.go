package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/logbook/internal/render"
	"github.com/mmcdole/logbook/internal/testutil/fakeapi"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "lookup:\n  cache_dir: " + filepath.Join(dir, "cache") + "\nlogging:\n  file: \"\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfgFile, serverURL, listCategory, cacheAll = "", "", "", false
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append(args, "--config", path))
	err := rootCmd.Execute()
	return out.String(), err
}

func seededServer(t *testing.T) *fakeapi.Server {
	t.Helper()
	srv := fakeapi.New()
	t.Cleanup(srv.Close)
	srv.Seed(
		fakeapi.Media{Name: "Naruto", Category: "Anime", Progress: "12", Score: "8"},
		fakeapi.Media{Name: "Dune", Category: "Book", Progress: "100", Score: "10", Complete: 1},
	)
	return srv
}

func TestListPrintsEntries(t *testing.T) {
	srv := seededServer(t)

	out, err := execute(t, "list", "--server", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "Naruto")
	assert.Contains(t, out, "Dune")
	assert.Contains(t, out, "Completed")
}

func TestListFiltersByTerm(t *testing.T) {
	srv := seededServer(t)

	out, err := execute(t, "list", "NAR", "--server", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, `Showing results for "nar"`)
	assert.Contains(t, out, "Naruto")
	assert.NotContains(t, out, "Dune")
}

func TestListFiltersByType(t *testing.T) {
	srv := seededServer(t)

	out, err := execute(t, "list", "--type", "book", "--server", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "Dune")
	assert.NotContains(t, out, "Naruto")
}

func TestListReportsServerFailure(t *testing.T) {
	srv := seededServer(t)
	srv.Fail("GET /medias", 500)

	_, err := execute(t, "list", "--server", srv.URL)
	require.Error(t, err)
	assert.Equal(t, "Failed to get medias.", err.Error())
}

func TestListTypeWithNoMatchesSaysSo(t *testing.T) {
	srv := seededServer(t)

	out, err := execute(t, "list", "--type", "movie", "--server", srv.URL)
	require.NoError(t, err)
	assert.Equal(t, render.MsgEmptyResults+"\n", out)
}
