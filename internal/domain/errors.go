package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an entry or comment id is not held locally.
var ErrNotFound = errors.New("not found")

// ValidationFailure is raised before any network call when a form is incomplete.
type ValidationFailure struct {
	Field  string
	Reason string
}

func (e *ValidationFailure) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// RemoteFailure wraps a non-2xx response or transport error from the backing service.
type RemoteFailure struct {
	Op     string // Attempted operation, e.g. "update media"
	Status int    // HTTP status, 0 for transport errors
	Err    error
}

func (e *RemoteFailure) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteFailure) Unwrap() error { return e.Err }

// Notice is the user-facing message for the failure.
func (e *RemoteFailure) Notice() string {
	return fmt.Sprintf("Failed to %s.", e.Op)
}

// LookupMismatch reports a comment mutation aimed at an entry or comment that is not held.
type LookupMismatch struct {
	MediaID   int64
	CommentID int64
}

func (e *LookupMismatch) Error() string {
	if e.CommentID != 0 {
		return fmt.Sprintf("comment %d on media %d not found", e.CommentID, e.MediaID)
	}
	return fmt.Sprintf("media %d not found", e.MediaID)
}

func (e *LookupMismatch) Unwrap() error { return ErrNotFound }

// UserNotice returns the message shown for err, or "" when it should stay silent.
func UserNotice(err error) string {
	var vf *ValidationFailure
	if errors.As(err, &vf) {
		return vf.Reason
	}
	var rf *RemoteFailure
	if errors.As(err, &rf) {
		return rf.Notice()
	}
	var lm *LookupMismatch
	if errors.As(err, &lm) {
		return ""
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
