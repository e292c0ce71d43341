// Package session tracks transient editing state: the single comment edit
// session, per-entry add-comment panels and collapsed comment lists.
package session

import (
	"log/slog"
	"strings"

	"github.com/mmcdole/logbook/internal/domain"
	"github.com/mmcdole/logbook/internal/render"
)

// EditSession is the comment currently being edited.
type EditSession struct {
	CommentID int64
	MediaID   int64
	Original  string
	Draft     string
	sub       Subscription
}

// SaveRequest is a validated comment edit ready to send.
type SaveRequest struct {
	CommentID int64
	MediaID   int64
	Text      string
}

type addPanel struct {
	draft string
	sub   Subscription
}

// Controller owns the edit session and add-comment panels. At most one
// comment is in editing state at a time; panels are independent per entry.
type Controller struct {
	overlays          *Overlays
	edit              *EditSession
	panels            map[int64]*addPanel
	collapsed         map[int64]bool
	collapseByDefault bool
	dirty             []int64
	logger            *slog.Logger
}

var _ render.ViewState = (*Controller)(nil)

// NewController creates a controller. collapseByDefault starts every
// comment list hidden.
func NewController(collapseByDefault bool, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		overlays:          NewOverlays(),
		panels:            make(map[int64]*addPanel),
		collapsed:         make(map[int64]bool),
		collapseByDefault: collapseByDefault,
		logger:            logger,
	}
}

// Overlays exposes the outside-click registry.
func (c *Controller) Overlays() *Overlays { return c.overlays }

func (c *Controller) touch(mediaID int64) {
	for _, id := range c.dirty {
		if id == mediaID {
			return
		}
	}
	c.dirty = append(c.dirty, mediaID)
}

// Dirty drains the ids of entries whose view state changed.
func (c *Controller) Dirty() []int64 {
	d := c.dirty
	c.dirty = nil
	return d
}

// === Comment edit session ===

// BeginEdit starts editing cm, cancelling any other session first.
func (c *Controller) BeginEdit(cm domain.Comment) {
	if c.edit != nil {
		if c.edit.CommentID == cm.ID {
			return
		}
		c.Cancel()
	}
	scope := render.CommentID(cm.MediaID, cm.ID)
	sub := c.overlays.Subscribe(scope, func(string) { c.Cancel() })
	c.edit = &EditSession{
		CommentID: cm.ID,
		MediaID:   cm.MediaID,
		Original:  cm.Text,
		Draft:     cm.Text,
		sub:       sub,
	}
	c.touch(cm.MediaID)
	c.logger.Debug("comment edit started", "comment_id", cm.ID, "media_id", cm.MediaID)
}

// Session returns a copy of the active edit session.
func (c *Controller) Session() (EditSession, bool) {
	if c.edit == nil {
		return EditSession{}, false
	}
	return *c.edit, true
}

// IsEditing reports whether commentID is the comment being edited.
func (c *Controller) IsEditing(commentID int64) bool {
	return c.edit != nil && c.edit.CommentID == commentID
}

// SetDraft replaces the draft text of the active session.
func (c *Controller) SetDraft(text string) bool {
	if c.edit == nil {
		return false
	}
	c.edit.Draft = text
	c.touch(c.edit.MediaID)
	return true
}

// Draft returns the active session's draft text.
func (c *Controller) Draft() string {
	if c.edit == nil {
		return ""
	}
	return c.edit.Draft
}

// Cancel ends the session, restoring the draft to the text captured when
// editing began. It returns the restored text.
func (c *Controller) Cancel() (string, bool) {
	if c.edit == nil {
		return "", false
	}
	e := c.edit
	e.Draft = e.Original
	c.overlays.Unsubscribe(e.sub)
	c.edit = nil
	c.touch(e.MediaID)
	c.logger.Debug("comment edit cancelled", "comment_id", e.CommentID)
	return e.Draft, true
}

// PrepareSave validates the draft. The session stays open until Close.
func (c *Controller) PrepareSave() (SaveRequest, error) {
	if c.edit == nil {
		return SaveRequest{}, domain.ErrNotFound
	}
	text, err := domain.ValidateCommentText(c.edit.Draft)
	if err != nil {
		return SaveRequest{}, err
	}
	return SaveRequest{CommentID: c.edit.CommentID, MediaID: c.edit.MediaID, Text: text}, nil
}

// Close ends the session for commentID after a confirmed save or delete.
func (c *Controller) Close(commentID int64) bool {
	if c.edit == nil || c.edit.CommentID != commentID {
		return false
	}
	c.overlays.Unsubscribe(c.edit.sub)
	c.touch(c.edit.MediaID)
	c.edit = nil
	return true
}

// === Add-comment panels ===

// ToggleAddPanel opens or closes the entry's add-comment panel and reports
// whether it is now open. Opening starts with an empty draft.
func (c *Controller) ToggleAddPanel(mediaID int64) bool {
	if p, ok := c.panels[mediaID]; ok {
		c.overlays.Unsubscribe(p.sub)
		delete(c.panels, mediaID)
		c.touch(mediaID)
		return false
	}
	sub := c.overlays.Subscribe(render.AddPanelID(mediaID), func(string) {
		c.closePanel(mediaID)
	})
	c.panels[mediaID] = &addPanel{sub: sub}
	c.touch(mediaID)
	return true
}

func (c *Controller) closePanel(mediaID int64) {
	p, ok := c.panels[mediaID]
	if !ok {
		return
	}
	c.overlays.Unsubscribe(p.sub)
	delete(c.panels, mediaID)
	c.touch(mediaID)
}

// PanelOpen reports whether the entry's add-comment panel is open.
func (c *Controller) PanelOpen(mediaID int64) bool {
	_, ok := c.panels[mediaID]
	return ok
}

// SetPanelDraft updates the text typed into an open panel.
func (c *Controller) SetPanelDraft(mediaID int64, text string) bool {
	p, ok := c.panels[mediaID]
	if !ok {
		return false
	}
	p.draft = text
	c.touch(mediaID)
	return true
}

// SubmitAddPanel closes the panel and returns its trimmed text. send is
// false when the text is empty; nothing should be sent then.
func (c *Controller) SubmitAddPanel(mediaID int64) (text string, send bool) {
	p, ok := c.panels[mediaID]
	if !ok {
		return "", false
	}
	text = strings.TrimSpace(p.draft)
	c.closePanel(mediaID)
	return text, text != ""
}

// === Comment lists ===

// ToggleComments collapses or expands the entry's comment list and
// reports whether it is now hidden.
func (c *Controller) ToggleComments(mediaID int64) bool {
	hidden := !c.CommentsHidden(mediaID)
	c.collapsed[mediaID] = hidden
	c.touch(mediaID)
	return hidden
}

// Forget drops all view state held for a removed entry.
func (c *Controller) Forget(mediaID int64) {
	if c.edit != nil && c.edit.MediaID == mediaID {
		c.overlays.Unsubscribe(c.edit.sub)
		c.edit = nil
	}
	c.closePanel(mediaID)
	delete(c.collapsed, mediaID)
}

// Click routes a click on target to the overlays. It reports whether any
// overlay was dismissed; such a click is consumed.
func (c *Controller) Click(target string) bool {
	return c.overlays.Dispatch(target)
}

// === render.ViewState ===

func (c *Controller) EditDraft(commentID int64) (string, bool) {
	if c.edit == nil || c.edit.CommentID != commentID {
		return "", false
	}
	return c.edit.Draft, true
}

func (c *Controller) AddPanel(mediaID int64) (string, bool) {
	p, ok := c.panels[mediaID]
	if !ok {
		return "", false
	}
	return p.draft, true
}

func (c *Controller) CommentsHidden(mediaID int64) bool {
	if v, ok := c.collapsed[mediaID]; ok {
		return v
	}
	return c.collapseByDefault
}
