// Package library holds the application state: confirmed entries, the active
// search term, transient edit state and the rendered list.
package library

import (
	"fmt"
	"log/slog"

	"github.com/mmcdole/logbook/internal/domain"
	"github.com/mmcdole/logbook/internal/render"
	"github.com/mmcdole/logbook/internal/search"
	"github.com/mmcdole/logbook/internal/session"
	"github.com/mmcdole/logbook/internal/store"
)

// State is mutated only from the UI loop. Every Apply method expects a
// server-confirmed value; nothing is applied speculatively.
type State struct {
	store    *store.Store
	ctrl     *session.Controller
	renderer render.Renderer
	list     render.List
	term     string
	logger   *slog.Logger
}

// NewState creates an empty state showing the "nothing yet" placeholder.
func NewState(ctrl *session.Controller, logger *slog.Logger) *State {
	if logger == nil {
		logger = slog.Default()
	}
	if ctrl == nil {
		ctrl = session.NewController(false, logger)
	}
	s := &State{
		store:    store.New(logger),
		ctrl:     ctrl,
		renderer: render.NewRenderer(ctrl),
		logger:   logger,
	}
	s.refresh()
	return s
}

// refresh re-renders the whole list from the store and the active term.
func (s *State) refresh() {
	if s.store.Len() == 0 {
		s.term = ""
		s.list = s.renderer.RenderAll(nil, render.EmptyStore)
		return
	}
	kind := render.EmptyStore
	if s.term != "" {
		kind = render.EmptyResults
	}
	s.list = s.renderer.RenderAll(search.Filter(s.store.All(), s.term), kind)
}

// rerender replaces one entry's node in place. Entries hidden by the
// filter have no node and are skipped.
func (s *State) rerender(mediaID int64) {
	e, ok := s.store.Find(mediaID)
	if !ok {
		return
	}
	s.list.Replace(s.renderer.RenderOne(e))
}

// sync re-renders the entries whose view state changed.
func (s *State) sync() {
	for _, id := range s.ctrl.Dirty() {
		s.rerender(id)
	}
}

// === Confirmations ===

// Load replaces the store with a fresh listing.
// View state for entries missing from the listing is dropped, as is an
// edit session whose comment is gone.
func (s *State) Load(entries []domain.MediaEntry) {
	previous := s.store.All()
	s.store.Reset(entries)
	for _, e := range previous {
		if _, ok := s.store.Find(e.ID); !ok {
			s.ctrl.Forget(e.ID)
		}
	}
	if es, ok := s.ctrl.Session(); ok {
		if _, held := s.store.FindComment(es.CommentID); !held {
			s.ctrl.Cancel()
		}
	}
	s.ctrl.Dirty()
	s.refresh()
	s.logger.Info("library loaded", "count", s.store.Len())
}

// ApplyCreated inserts a confirmed new entry.
func (s *State) ApplyCreated(e domain.MediaEntry) bool {
	if !s.store.Insert(e) {
		return false
	}
	if s.term != "" {
		s.refresh()
	} else {
		s.list.Append(s.renderer.RenderOne(e))
	}
	s.logger.Info("media created", "media_id", e.ID, "name", e.Name)
	return true
}

// ApplyUpdated applies confirmed fields to an entry in place.
func (s *State) ApplyUpdated(id int64, fields domain.MediaFields) bool {
	cur, ok := s.store.Find(id)
	if !ok {
		s.logger.Warn("update for unknown entry", "error", &domain.LookupMismatch{MediaID: id})
		return false
	}
	updated := fields.Apply(cur)
	s.store.Update(updated)
	if s.term != "" {
		s.refresh()
	} else {
		s.list.Replace(s.renderer.RenderOne(updated))
	}
	s.logger.Info("media updated", "media_id", id)
	return true
}

// ApplyDeleted removes a confirmed deleted entry.
func (s *State) ApplyDeleted(e domain.MediaEntry) bool {
	if !s.store.Remove(e.ID) {
		return false
	}
	s.ctrl.Forget(e.ID)
	s.ctrl.Dirty()
	switch {
	case s.store.Len() == 0, s.term != "":
		s.refresh()
	default:
		s.list.Remove(render.EntryID(e.ID))
	}
	s.logger.Info("media deleted", "media_id", e.ID)
	return true
}

// resolveMedia fills in a missing owning entry id from the store.
func (s *State) resolveMedia(c domain.Comment) domain.Comment {
	if c.MediaID != 0 {
		return c
	}
	if held, ok := s.store.FindComment(c.ID); ok {
		c.MediaID = held.MediaID
	}
	return c
}

// ApplyCommentCreated attaches a confirmed comment to its entry.
func (s *State) ApplyCommentCreated(c domain.Comment) bool {
	if !s.store.InsertComment(c.MediaID, c) {
		return false
	}
	s.rerender(c.MediaID)
	return true
}

// ApplyCommentUpdated stores confirmed text and ends the edit session.
func (s *State) ApplyCommentUpdated(c domain.Comment) bool {
	c = s.resolveMedia(c)
	s.ctrl.Close(c.ID)
	ok := s.store.UpdateComment(c.MediaID, c.ID, c.Text)
	s.sync()
	s.rerender(c.MediaID)
	return ok
}

// ApplyCommentDeleted removes a confirmed deleted comment.
func (s *State) ApplyCommentDeleted(c domain.Comment) bool {
	c = s.resolveMedia(c)
	s.ctrl.Close(c.ID)
	ok := s.store.RemoveComment(c.MediaID, c.ID)
	s.sync()
	s.rerender(c.MediaID)
	return ok
}

// === Search ===

// Search submits a new term. An empty store clears it.
func (s *State) Search(raw string) {
	s.term = search.NormalizeTerm(raw)
	s.refresh()
}

// Term returns the active search term.
func (s *State) Term() string { return s.term }

// SearchBanner describes the active search, or "".
func (s *State) SearchBanner() string {
	if s.term == "" {
		return ""
	}
	return fmt.Sprintf("Showing results for \"%s\"", s.term)
}

// === View actions ===

// Click routes a click to the outside-click overlays and reports whether
// it dismissed something.
func (s *State) Click(target string) bool {
	fired := s.ctrl.Click(target)
	s.sync()
	return fired
}

// BeginEdit opens the edit view for a held comment.
func (s *State) BeginEdit(commentID int64) bool {
	c, ok := s.store.FindComment(commentID)
	if !ok {
		return false
	}
	s.ctrl.BeginEdit(c)
	s.sync()
	return true
}

// SetEditDraft updates the text typed into the edit view.
func (s *State) SetEditDraft(text string) {
	s.ctrl.SetDraft(text)
	s.sync()
}

// CancelEdit closes the edit view, restoring the original text.
func (s *State) CancelEdit() (string, bool) {
	text, ok := s.ctrl.Cancel()
	s.sync()
	return text, ok
}

// PrepareSave validates the edit draft.
func (s *State) PrepareSave() (session.SaveRequest, error) {
	return s.ctrl.PrepareSave()
}

// ToggleAddPanel opens or closes an entry's add-comment panel.
func (s *State) ToggleAddPanel(mediaID int64) bool {
	open := s.ctrl.ToggleAddPanel(mediaID)
	s.sync()
	return open
}

// SetPanelDraft updates the text typed into an add-comment panel.
func (s *State) SetPanelDraft(mediaID int64, text string) {
	s.ctrl.SetPanelDraft(mediaID, text)
	s.sync()
}

// SubmitAddPanel closes the panel and returns the text to send, if any.
func (s *State) SubmitAddPanel(mediaID int64) (string, bool) {
	text, send := s.ctrl.SubmitAddPanel(mediaID)
	s.sync()
	return text, send
}

// ToggleComments collapses or expands an entry's comment list.
func (s *State) ToggleComments(mediaID int64) bool {
	hidden := s.ctrl.ToggleComments(mediaID)
	s.sync()
	return hidden
}
