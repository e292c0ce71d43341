package store

import (
	"log/slog"

	"github.com/mmcdole/logbook/internal/domain"
)

// Store is the in-memory, insertion-ordered collection of confirmed entries.
// It is owned by a single goroutine (the UI loop) and is not locked.
type Store struct {
	entries []domain.MediaEntry
	logger  *slog.Logger
}

// New creates an empty store.
func New(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{logger: logger}
}

func (s *Store) index(id int64) int {
	for i := range s.entries {
		if s.entries[i].ID == id {
			return i
		}
	}
	return -1
}

// Reset replaces the contents with a fresh listing, keeping the first of any duplicate ids.
func (s *Store) Reset(entries []domain.MediaEntry) {
	s.entries = s.entries[:0:0]
	for _, e := range entries {
		s.Insert(e)
	}
}

// Insert appends the entry unless its id is already held.
func (s *Store) Insert(entry domain.MediaEntry) bool {
	if s.index(entry.ID) >= 0 {
		s.logger.Debug("duplicate insert ignored", "media_id", entry.ID)
		return false
	}
	s.entries = append(s.entries, entry.Clone())
	return true
}

// Update replaces the fields of the matching entry in place.
func (s *Store) Update(entry domain.MediaEntry) bool {
	i := s.index(entry.ID)
	if i < 0 {
		s.logger.Warn("update for unknown entry", "error", &domain.LookupMismatch{MediaID: entry.ID})
		return false
	}
	s.entries[i] = entry.Clone()
	return true
}

// Remove deletes the matching entry.
func (s *Store) Remove(id int64) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
	return true
}

// Find returns a copy of the entry with the given id.
func (s *Store) Find(id int64) (domain.MediaEntry, bool) {
	i := s.index(id)
	if i < 0 {
		return domain.MediaEntry{}, false
	}
	return s.entries[i].Clone(), true
}

// All returns copies of every entry, oldest first.
func (s *Store) All() []domain.MediaEntry {
	out := make([]domain.MediaEntry, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Clone()
	}
	return out
}

// Len returns the number of held entries.
func (s *Store) Len() int { return len(s.entries) }

// InsertComment appends a comment to its owning entry.
func (s *Store) InsertComment(mediaID int64, c domain.Comment) bool {
	i := s.index(mediaID)
	if i < 0 {
		s.mismatch("insert comment", mediaID, c.ID)
		return false
	}
	e := &s.entries[i]
	if e.CommentIndex(c.ID) >= 0 {
		return false
	}
	c.MediaID = mediaID
	e.Comments = append(e.Comments, c)
	return true
}

// UpdateComment replaces the text of a comment on its owning entry.
func (s *Store) UpdateComment(mediaID, commentID int64, text string) bool {
	i := s.index(mediaID)
	if i < 0 {
		s.mismatch("update comment", mediaID, commentID)
		return false
	}
	j := s.entries[i].CommentIndex(commentID)
	if j < 0 {
		s.mismatch("update comment", mediaID, commentID)
		return false
	}
	s.entries[i].Comments[j].Text = text
	return true
}

// RemoveComment deletes a comment from its owning entry.
func (s *Store) RemoveComment(mediaID, commentID int64) bool {
	i := s.index(mediaID)
	if i < 0 {
		s.mismatch("remove comment", mediaID, commentID)
		return false
	}
	e := &s.entries[i]
	j := e.CommentIndex(commentID)
	if j < 0 {
		s.mismatch("remove comment", mediaID, commentID)
		return false
	}
	e.Comments = append(e.Comments[:j:j], e.Comments[j+1:]...)
	return true
}

// FindComment locates a comment by id across all entries.
func (s *Store) FindComment(commentID int64) (domain.Comment, bool) {
	for _, e := range s.entries {
		if j := e.CommentIndex(commentID); j >= 0 {
			return e.Comments[j], true
		}
	}
	return domain.Comment{}, false
}

func (s *Store) mismatch(op string, mediaID, commentID int64) {
	s.logger.Warn("comment target not held", "op", op,
		"error", &domain.LookupMismatch{MediaID: mediaID, CommentID: commentID})
}
