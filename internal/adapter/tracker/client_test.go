package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/logbook/internal/domain"
	"github.com/mmcdole/logbook/internal/testutil/fakeapi"
)

func newTestClient(t *testing.T) (*Client, *fakeapi.Server) {
	t.Helper()
	srv := fakeapi.New()
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL, 2*time.Second, nil)
	require.NoError(t, err)
	return c, srv
}

func TestListMedia(t *testing.T) {
	c, srv := newTestClient(t)
	synopsis := "<p>Ninja.</p>"
	srv.Seed(
		fakeapi.Media{Name: "Naruto", Category: "Anime", Progress: "12", Score: "8", Complete: 1, Synopsis: &synopsis,
			Comments: []fakeapi.Comment{{ID: 50, MediaID: 1, Text: "great"}}},
		fakeapi.Media{Name: "Dune", Category: "Book", Progress: "100", Score: "9"},
	)

	got, err := c.ListMedia(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Naruto", got[0].Name)
	assert.Equal(t, domain.CategoryAnime, got[0].Category)
	assert.True(t, got[0].Complete)
	assert.Equal(t, synopsis, got[0].Synopsis)
	assert.Equal(t, []domain.Comment{{ID: 50, MediaID: 1, Text: "great"}}, got[0].Comments)
	assert.Equal(t, "Dune", got[1].Name)
	assert.False(t, got[1].Complete)
	assert.Empty(t, got[1].ExternalID)
}

func TestCreateMediaSendsForm(t *testing.T) {
	c, srv := newTestClient(t)

	created, err := c.CreateMedia(context.Background(), domain.MediaFields{
		Name: "Bleach", Category: domain.CategoryAnime, Progress: "0", Score: "7", Date: "01-02-2024",
		Metadata: &domain.SelectedMetadata{ExternalID: "269", TotalEpisodes: "366"},
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Bleach", created.Name)
	assert.Equal(t, "269", created.ExternalID)

	form := srv.LastForm("POST /media")
	assert.Equal(t, "0", form["complete"])
	assert.Equal(t, "", form["synopsis"])
	assert.Equal(t, "366", form["total_episodes"])
}

func TestUpdateMedia(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Seed(fakeapi.Media{ID: 5, Name: "Old", Category: "Manga", Score: "5"})

	err := c.UpdateMedia(context.Background(), 5, domain.MediaFields{Name: "New", Category: domain.CategoryManga, Score: "6", Complete: true})
	require.NoError(t, err)
	assert.Equal(t, "1", srv.LastForm("PATCH /media")["complete"])

	list, err := c.ListMedia(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "New", list[0].Name)
}

func TestDeleteMedia(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Seed(fakeapi.Media{ID: 3, Name: "Gone"})

	deleted, err := c.DeleteMedia(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted.ID)
	assert.Equal(t, "Gone", deleted.Name)
}

func TestCommentLifecycle(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Seed(fakeapi.Media{ID: 1, Name: "Naruto"})
	ctx := context.Background()

	cm, err := c.CreateComment(ctx, 1, "great")
	require.NoError(t, err)
	assert.Equal(t, int64(1), cm.MediaID)
	assert.Equal(t, "great", cm.Text)

	updated, err := c.UpdateComment(ctx, cm.ID, "even better")
	require.NoError(t, err)
	assert.Equal(t, cm.ID, updated.ID)
	assert.Equal(t, int64(1), updated.MediaID)
	assert.Equal(t, "even better", updated.Text)

	deleted, err := c.DeleteComment(ctx, cm.ID)
	require.NoError(t, err)
	assert.Equal(t, cm.ID, deleted.ID)
	assert.Equal(t, int64(1), deleted.MediaID)
}

func TestSearchExternal(t *testing.T) {
	c, srv := newTestClient(t)
	srv.SetResults("bleach", []fakeapi.Result{{Title: "Bleach", ExternalID: "269", TotalEpisodes: 366, ExternalScore: 7.9}})

	got, err := c.SearchExternal(context.Background(), "Bleach", domain.CategoryAnime)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "366", got[0].TotalEpisodes)
	assert.Equal(t, "7.9", got[0].ExternalScore)

	empty, err := c.SearchExternal(context.Background(), "nothing", domain.CategoryAnime)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestNonSuccessIsRemoteFailure(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Seed(fakeapi.Media{ID: 5, Name: "Keep"})
	srv.Fail("PATCH /media", http.StatusInternalServerError)

	err := c.UpdateMedia(context.Background(), 5, domain.MediaFields{Name: "Lost", Category: domain.CategoryAnime, Score: "1"})
	var rf *domain.RemoteFailure
	require.True(t, errors.As(err, &rf))
	assert.Equal(t, OpUpdateMedia, rf.Op)
	assert.Equal(t, http.StatusInternalServerError, rf.Status)
	assert.Equal(t, "Failed to patch media.", rf.Notice())
	assert.Equal(t, 1, srv.Calls("PATCH /media"), "no retry")
}

func TestTransportErrorIsRemoteFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewClient(url, time.Second, nil)
	require.NoError(t, err)
	_, err = c.ListMedia(context.Background())
	var rf *domain.RemoteFailure
	require.ErrorAs(t, err, &rf)
	assert.Equal(t, 0, rf.Status)
	assert.Equal(t, OpListMedia, rf.Op)
}

func TestMalformedEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items": []}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, time.Second, nil)
	require.NoError(t, err)
	_, err = c.ListMedia(context.Background())
	var rf *domain.RemoteFailure
	require.ErrorAs(t, err, &rf)
}

func TestBaseURLPathPrefix(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"medias": []}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL+"/api/", time.Second, nil)
	require.NoError(t, err)
	_, err = c.ListMedia(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/api/medias", gotPath)
}

func TestLooseDecoding(t *testing.T) {
	var d mediaDTO
	raw := `{"id":"7","name":"X","progress":12,"score":8.5,"complete":"1","total_episodes":null,"external_score":"null"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &d))
	m := mapMedia(d)
	assert.Equal(t, int64(7), m.ID)
	assert.Equal(t, "12", m.Progress)
	assert.Equal(t, "8.5", m.Score)
	assert.True(t, m.Complete)
	assert.Empty(t, m.TotalEpisodes)
	assert.Empty(t, m.ExternalScore)
	assert.NotNil(t, m.Comments)
}
