package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/logbook/internal/domain"
	"github.com/mmcdole/logbook/internal/library"
	"github.com/mmcdole/logbook/internal/lookup"
)

// Command factories for async operations. Requests are bounded by the
// HTTP client's timeout only and are never cancelled.

// LoadMediaCmd fetches the full listing
func LoadMediaCmd(cmds *library.Commands) tea.Cmd {
	return func() tea.Msg {
		entries, err := cmds.ListMedia(context.Background())
		if err != nil {
			return ErrMsg{Err: err, Context: "loading media"}
		}
		return MediaLoadedMsg{Entries: entries}
	}
}

// CreateMediaCmd creates an entry
func CreateMediaCmd(cmds *library.Commands, fields domain.MediaFields) tea.Cmd {
	return func() tea.Msg {
		entry, err := cmds.CreateMedia(context.Background(), fields)
		if err != nil {
			return ErrMsg{Err: err, Context: "adding media"}
		}
		return MediaCreatedMsg{Entry: entry}
	}
}

// UpdateMediaCmd updates an entry
func UpdateMediaCmd(cmds *library.Commands, id int64, fields domain.MediaFields) tea.Cmd {
	return func() tea.Msg {
		if err := cmds.UpdateMedia(context.Background(), id, fields); err != nil {
			return ErrMsg{Err: err, Context: "updating media"}
		}
		return MediaUpdatedMsg{ID: id, Fields: fields}
	}
}

// DeleteMediaCmd deletes an entry
func DeleteMediaCmd(cmds *library.Commands, id int64) tea.Cmd {
	return func() tea.Msg {
		entry, err := cmds.DeleteMedia(context.Background(), id)
		if err != nil {
			return ErrMsg{Err: err, Context: "deleting media"}
		}
		return MediaDeletedMsg{Entry: entry}
	}
}

// CreateCommentCmd adds a comment to an entry
func CreateCommentCmd(cmds *library.Commands, mediaID int64, text string) tea.Cmd {
	return func() tea.Msg {
		c, err := cmds.CreateComment(context.Background(), mediaID, text)
		if err != nil {
			return ErrMsg{Err: err, Context: "adding comment"}
		}
		return CommentCreatedMsg{Comment: c}
	}
}

// UpdateCommentCmd saves edited comment text
func UpdateCommentCmd(cmds *library.Commands, id, mediaID int64, text string) tea.Cmd {
	return func() tea.Msg {
		c, err := cmds.UpdateComment(context.Background(), id, text)
		if err != nil {
			return ErrMsg{Err: err, Context: "updating comment"}
		}
		if c.MediaID == 0 {
			c.MediaID = mediaID
		}
		return CommentUpdatedMsg{Comment: c}
	}
}

// DeleteCommentCmd deletes a comment
func DeleteCommentCmd(cmds *library.Commands, id int64) tea.Cmd {
	return func() tea.Msg {
		c, err := cmds.DeleteComment(context.Background(), id)
		if err != nil {
			return ErrMsg{Err: err, Context: "deleting comment"}
		}
		return CommentDeletedMsg{Comment: c}
	}
}

// LookupCmd searches external metadata for the form
func LookupCmd(svc *lookup.Service, seq int, query string, category domain.Category) tea.Cmd {
	return func() tea.Msg {
		res, err := svc.Search(context.Background(), query, category)
		return LookupMsg{Seq: seq, Result: res, Err: err}
	}
}

// ClearStatusCmd clears the status message after a delay
func ClearStatusCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
