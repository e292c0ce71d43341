package tui

import (
	"github.com/mmcdole/logbook/internal/domain"
	"github.com/mmcdole/logbook/internal/lookup"
)

// Message types for the TUI. Every mutation message carries a
// server-confirmed value.

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// Unwrap exposes the wrapped error to errors.As
func (e ErrMsg) Unwrap() error { return e.Err }

// MediaLoadedMsg signals that the full listing arrived
type MediaLoadedMsg struct {
	Entries []domain.MediaEntry
}

// MediaCreatedMsg signals a confirmed new entry
type MediaCreatedMsg struct {
	Entry domain.MediaEntry
}

// MediaUpdatedMsg signals a confirmed update. The server echoes nothing
// useful, so the submitted fields are applied.
type MediaUpdatedMsg struct {
	ID     int64
	Fields domain.MediaFields
}

// MediaDeletedMsg signals a confirmed deletion
type MediaDeletedMsg struct {
	Entry domain.MediaEntry
}

// CommentCreatedMsg signals a confirmed new comment
type CommentCreatedMsg struct {
	Comment domain.Comment
}

// CommentUpdatedMsg signals a confirmed comment edit
type CommentUpdatedMsg struct {
	Comment domain.Comment
}

// CommentDeletedMsg signals a confirmed comment deletion
type CommentDeletedMsg struct {
	Comment domain.Comment
}

// LookupMsg carries external search results for the form
type LookupMsg struct {
	Seq    int
	Result lookup.Result
	Err    error
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
