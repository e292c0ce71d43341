package library

import (
	"github.com/mmcdole/logbook/internal/domain"
	"github.com/mmcdole/logbook/internal/render"
	"github.com/mmcdole/logbook/internal/search"
	"github.com/mmcdole/logbook/internal/session"
)

// Display returns the rendered list.
func (s *State) Display() render.List { return s.list }

// Visible returns the entries shown under the active term.
func (s *State) Visible() []domain.MediaEntry {
	return search.Filter(s.store.All(), s.term)
}

// Find returns a held entry.
func (s *State) Find(id int64) (domain.MediaEntry, bool) { return s.store.Find(id) }

// FindComment returns a held comment.
func (s *State) FindComment(id int64) (domain.Comment, bool) { return s.store.FindComment(id) }

// All returns every held entry in insertion order.
func (s *State) All() []domain.MediaEntry { return s.store.All() }

// Len returns the number of held entries.
func (s *State) Len() int { return s.store.Len() }

// Session returns the active comment edit session.
func (s *State) Session() (session.EditSession, bool) { return s.ctrl.Session() }

// PanelOpen reports whether an entry's add-comment panel is open.
func (s *State) PanelOpen(mediaID int64) bool { return s.ctrl.PanelOpen(mediaID) }

// CommentsHidden reports whether an entry's comment list is collapsed.
func (s *State) CommentsHidden(mediaID int64) bool { return s.ctrl.CommentsHidden(mediaID) }

// PanelDraft returns the text typed into an open add-comment panel.
func (s *State) PanelDraft(mediaID int64) (string, bool) { return s.ctrl.AddPanel(mediaID) }
