package library

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/logbook/internal/adapter/tracker"
	"github.com/mmcdole/logbook/internal/domain"
	"github.com/mmcdole/logbook/internal/testutil/fakeapi"
)

func newCommands(t *testing.T) (*Commands, *fakeapi.Server) {
	t.Helper()
	srv := fakeapi.New()
	t.Cleanup(srv.Close)
	client, err := tracker.NewClient(srv.URL, 2*time.Second, nil)
	require.NoError(t, err)
	return NewCommands(client, client, nil), srv
}

func TestValidationStopsBeforeNetwork(t *testing.T) {
	cmds, srv := newCommands(t)
	ctx := context.Background()

	_, err := cmds.CreateMedia(ctx, domain.MediaFields{Name: "Naruto", Category: domain.CategoryAnime, Score: "8", Progress: "abc"})
	var vf *domain.ValidationFailure
	require.ErrorAs(t, err, &vf)
	assert.Equal(t, "Progress must be a number!", vf.Reason)

	err = cmds.UpdateMedia(ctx, 1, domain.MediaFields{Category: domain.CategoryAnime, Score: "8"})
	require.ErrorAs(t, err, &vf)

	_, err = cmds.CreateComment(ctx, 1, "   ")
	require.ErrorAs(t, err, &vf)

	assert.Zero(t, srv.Calls("POST /media"))
	assert.Zero(t, srv.Calls("PATCH /media"))
	assert.Zero(t, srv.Calls("POST /comment"))
}

func TestRemoteFailureLeavesStateUntouched(t *testing.T) {
	cmds, srv := newCommands(t)
	ctx := context.Background()
	srv.Seed(fakeapi.Media{ID: 5, Name: "Monster", Category: "Manga", Score: "10", Progress: "40"})

	entries, err := cmds.ListMedia(ctx)
	require.NoError(t, err)
	s := NewState(nil, nil)
	s.Load(entries)

	before, ok := s.Find(5)
	require.True(t, ok)
	beforeView := s.Display()
	beforeNode := beforeView.Nodes[0]

	srv.Fail("PATCH /media", http.StatusInternalServerError)
	err = cmds.UpdateMedia(ctx, 5, domain.MediaFields{Name: "Pluto", Category: domain.CategoryManga, Score: "9"})
	var rf *domain.RemoteFailure
	require.True(t, errors.As(err, &rf))
	assert.Equal(t, "Failed to patch media.", domain.UserNotice(err))

	after, _ := s.Find(5)
	assert.Equal(t, before, after)
	afterView := s.Display()
	assert.Equal(t, beforeNode, afterView.Nodes[0])
}

func TestRoundTrip(t *testing.T) {
	cmds, _ := newCommands(t)
	ctx := context.Background()
	s := NewState(nil, nil)

	fields := domain.MediaFields{Name: "Naruto", Category: domain.CategoryAnime, Score: "8", Progress: "0", Date: "01-01-2024"}
	created, err := cmds.CreateMedia(ctx, fields)
	require.NoError(t, err)
	require.True(t, s.ApplyCreated(created))

	fields.Progress = "12"
	require.NoError(t, cmds.UpdateMedia(ctx, created.ID, fields))
	require.True(t, s.ApplyUpdated(created.ID, fields))

	cm, err := cmds.CreateComment(ctx, created.ID, " great ")
	require.NoError(t, err)
	assert.Equal(t, "great", cm.Text)
	require.True(t, s.ApplyCommentCreated(cm))

	upd, err := cmds.UpdateComment(ctx, cm.ID, "greater")
	require.NoError(t, err)
	require.True(t, s.ApplyCommentUpdated(upd))

	remote, err := cmds.ListMedia(ctx)
	require.NoError(t, err)
	local := s.All()
	require.Len(t, remote, 1)
	assert.Equal(t, remote[0].Progress, local[0].Progress)
	assert.Equal(t, remote[0].Comments, local[0].Comments)

	gone, err := cmds.DeleteComment(ctx, cm.ID)
	require.NoError(t, err)
	require.True(t, s.ApplyCommentDeleted(gone))

	deleted, err := cmds.DeleteMedia(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, s.ApplyDeleted(deleted))
	assert.Zero(t, s.Len())
}
