package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/logbook/internal/render"
	"github.com/mmcdole/logbook/internal/tui/components"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// Handle state-specific keys
	switch m.State {
	case StateHelp:
		if key.Matches(msg, Keys.Escape, Keys.Help, Keys.Quit) {
			m.State = StateBrowsing
		}
		return m, nil

	case StateForm:
		return m.handleFormKey(msg)

	case StateSearching:
		return m.handleSearchKey(msg)
	}

	// An inline input swallows typing
	if m.focus != focusNone {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Escape):
		// Leave comment mode first, then clear an active search
		if m.comment != 0 {
			m.toggleCommentMode()
			return m, nil
		}
		if m.Library.Term() != "" {
			m.Library.Search("")
		}
		return m, nil

	case key.Matches(msg, Keys.Search):
		m.State = StateSearching
		m.search.SetValue("")
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, Keys.Add):
		return m.openAddForm()

	case key.Matches(msg, Keys.Edit):
		if m.comment != 0 {
			return m.beginCommentEdit(m.comment)
		}
		return m.openEditForm(m.selected)

	case key.Matches(msg, Keys.EditComment):
		if m.comment != 0 {
			return m.beginCommentEdit(m.comment)
		}
		return m, nil

	case key.Matches(msg, Keys.DeleteComment):
		if m.comment != 0 {
			return m, DeleteCommentCmd(m.Commands, m.comment)
		}
		return m, nil

	case key.Matches(msg, Keys.Delete):
		if m.selected != 0 && m.comment == 0 {
			return m, DeleteMediaCmd(m.Commands, m.selected)
		}
		return m, nil

	case key.Matches(msg, Keys.Comment):
		if m.selected != 0 {
			return m.toggleAddPanel(m.selected)
		}
		return m, nil

	case key.Matches(msg, Keys.Collapse):
		if m.selected != 0 {
			m.Library.ToggleComments(m.selected)
			m.follow = render.EntryID(m.selected)
		}
		return m, nil

	case key.Matches(msg, Keys.Comments):
		m.toggleCommentMode()
		return m, nil

	case key.Matches(msg, Keys.Up):
		m.moveSelection(-1)
		return m, nil

	case key.Matches(msg, Keys.Down):
		m.moveSelection(1)
		return m, nil

	case key.Matches(msg, Keys.Home):
		m.jump(false)
		return m, nil

	case key.Matches(msg, Keys.End):
		m.jump(true)
		return m, nil

	case key.Matches(msg, Keys.PageUp):
		m.viewport.ScrollUp(max(1, m.viewport.Height/2))
		return m, nil

	case key.Matches(msg, Keys.PageDown):
		m.viewport.ScrollDown(max(1, m.viewport.Height/2))
		return m, nil

	case key.Matches(msg, Keys.Refresh):
		m.Loading = true
		return m, LoadMediaCmd(m.Commands)
	}

	return m, nil
}

// handleFormKey routes keys to the media form
func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	var res components.FormResult
	m.Form, cmd, res = m.Form.Update(msg)
	switch res {
	case components.FormCancelled:
		m.State = StateBrowsing
	case components.FormSubmitted:
		return m.submitForm()
	}
	return m, cmd
}

// handleInputKey edits the focused add-comment panel or comment draft
func (m Model) handleInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.focus {
	case focusAddPanel:
		switch {
		case msg.Type == tea.KeyEnter:
			return m.submitAddPanel(m.focusMedia)
		case key.Matches(msg, Keys.Escape):
			m.Library.ToggleAddPanel(m.focusMedia)
			m.blurInput()
			return m, nil
		}

	case focusEdit:
		switch {
		case msg.Type == tea.KeyEnter, key.Matches(msg, Keys.SaveComment):
			return m.saveComment()
		case key.Matches(msg, Keys.Escape):
			m.cancelComment()
			return m, nil
		case key.Matches(msg, Keys.DeleteComment):
			return m.deleteEditedComment()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	switch m.focus {
	case focusAddPanel:
		m.Library.SetPanelDraft(m.focusMedia, m.input.Value())
	case focusEdit:
		m.Library.SetEditDraft(m.input.Value())
	}
	return m, cmd
}
