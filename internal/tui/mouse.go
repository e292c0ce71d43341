package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/logbook/internal/render"
)

// handleMouse turns clicks into node targets. Wheel events scroll the list.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.State == StateForm || m.State == StateHelp {
		return m, nil
	}
	if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	target := ""
	if row := msg.Y - headerHeight; row >= 0 && row < m.viewport.Height {
		target = m.frame.HitTest(row+m.viewport.YOffset, msg.X)
	}
	if m.State == StateSearching {
		m.search.Blur()
		m.State = StateBrowsing
	}
	return m.click(target)
}

// click dispatches a click on a node id. Open panels and edit areas see
// it first; a click that dismisses one does nothing else.
func (m Model) click(target string) (Model, tea.Cmd) {
	if m.Library.Click(target) {
		return m, nil
	}
	t, ok := render.ParseTarget(target)
	if !ok {
		return m, nil
	}
	m.selectEntry(t.MediaID)

	if t.CommentID != 0 {
		m.selectComment(t.CommentID)
		switch t.Action {
		case "text":
			return m.beginCommentEdit(t.CommentID)
		case "edit/input":
			cmd := m.focusEdit()
			return m, cmd
		case "edit/save":
			return m.saveComment()
		case "edit/cancel":
			m.cancelComment()
		case "edit/delete":
			return m.deleteEditedComment()
		}
		return m, nil
	}

	switch {
	case t.Action == "delete":
		return m, DeleteMediaCmd(m.Commands, t.MediaID)
	case t.Action == "new":
		return m.toggleAddPanel(t.MediaID)
	case t.Action == "toggle-comments":
		m.Library.ToggleComments(t.MediaID)
	case t.Action == "add-comment/submit":
		return m.submitAddPanel(t.MediaID)
	case t.Action == "add-comment/input":
		cmd := m.focusPanel(t.MediaID)
		return m, cmd
	case t.Action == "edit", strings.HasPrefix(t.Action, "edit/"):
		return m.openEditForm(t.MediaID)
	}
	return m, nil
}

// === Inline inputs ===

func (m *Model) blurInput() {
	m.focus = focusNone
	m.focusMedia = 0
	m.input.Blur()
}

// focusPanel moves typing into an open add-comment panel
func (m *Model) focusPanel(mediaID int64) tea.Cmd {
	draft, ok := m.Library.PanelDraft(mediaID)
	if !ok {
		return nil
	}
	m.focus = focusAddPanel
	m.focusMedia = mediaID
	m.input.SetValue(draft)
	m.input.CursorEnd()
	m.follow = render.AddPanelID(mediaID)
	return m.input.Focus()
}

// focusEdit moves typing into the comment edit area
func (m *Model) focusEdit() tea.Cmd {
	s, ok := m.Library.Session()
	if !ok {
		return nil
	}
	m.focus = focusEdit
	m.focusMedia = s.MediaID
	m.input.SetValue(s.Draft)
	m.input.CursorEnd()
	m.follow = render.EditAreaID(s.MediaID, s.CommentID)
	return m.input.Focus()
}

// toggleAddPanel opens or closes an entry's add-comment panel
func (m Model) toggleAddPanel(mediaID int64) (Model, tea.Cmd) {
	if m.Library.ToggleAddPanel(mediaID) {
		cmd := m.focusPanel(mediaID)
		return m, cmd
	}
	if m.focus == focusAddPanel && m.focusMedia == mediaID {
		m.blurInput()
	}
	return m, nil
}

// submitAddPanel closes the panel and sends its text, if any
func (m Model) submitAddPanel(mediaID int64) (Model, tea.Cmd) {
	text, send := m.Library.SubmitAddPanel(mediaID)
	if m.focus == focusAddPanel && m.focusMedia == mediaID {
		m.blurInput()
	}
	if !send {
		return m, nil
	}
	return m, CreateCommentCmd(m.Commands, mediaID, text)
}

// beginCommentEdit opens the edit view of a comment, closing any other
func (m Model) beginCommentEdit(commentID int64) (Model, tea.Cmd) {
	if !m.Library.BeginEdit(commentID) {
		return m, nil
	}
	s, _ := m.Library.Session()
	m.selectEntry(s.MediaID)
	m.selectComment(commentID)
	cmd := m.focusEdit()
	return m, cmd
}

// saveComment validates the draft and sends it. The edit view stays open
// until the server confirms.
func (m Model) saveComment() (Model, tea.Cmd) {
	req, err := m.Library.PrepareSave()
	if err != nil {
		return m.notifyErr(err)
	}
	return m, UpdateCommentCmd(m.Commands, req.CommentID, req.MediaID, req.Text)
}

// cancelComment restores the original text and closes the edit view
func (m *Model) cancelComment() {
	m.Library.CancelEdit()
	m.blurInput()
}

// deleteEditedComment closes the edit view, then deletes the comment
func (m Model) deleteEditedComment() (Model, tea.Cmd) {
	s, ok := m.Library.Session()
	if !ok {
		return m, nil
	}
	m.cancelComment()
	return m, DeleteCommentCmd(m.Commands, s.CommentID)
}
