package tui

import (
	"github.com/mmcdole/logbook/internal/render"
)

// visibleIDs lists the entries currently shown, in order
func (m Model) visibleIDs() []int64 {
	entries := m.Library.Visible()
	ids := make([]int64, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

// commentIDs lists the shown comments of an entry. A collapsed list has none.
func (m Model) commentIDs(mediaID int64) []int64 {
	if m.Library.CommentsHidden(mediaID) {
		return nil
	}
	e, ok := m.Library.Find(mediaID)
	if !ok {
		return nil
	}
	ids := make([]int64, len(e.Comments))
	for i, c := range e.Comments {
		ids[i] = c.ID
	}
	return ids
}

func indexOf(ids []int64, id int64) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

// selectEntry moves the cursor to an entry at entry level
func (m *Model) selectEntry(id int64) {
	if id != m.selected {
		m.comment = 0
	}
	m.selected = id
	if id != 0 {
		m.follow = render.EntryID(id)
	}
}

// selectComment moves the cursor onto a comment of the selected entry
func (m *Model) selectComment(id int64) {
	m.comment = id
	if id != 0 {
		m.follow = render.CommentID(m.selected, id)
	}
}

// neighborOf returns the entry that takes id's place once it is removed
func (m Model) neighborOf(id int64) int64 {
	ids := m.visibleIDs()
	i := indexOf(ids, id)
	switch {
	case i < 0:
		return m.selected
	case i+1 < len(ids):
		return ids[i+1]
	case i > 0:
		return ids[i-1]
	}
	return 0
}

// moveSelection steps through comments in comment mode, entries otherwise
func (m *Model) moveSelection(delta int) {
	if m.comment != 0 {
		ids := m.commentIDs(m.selected)
		if i := indexOf(ids, m.comment); i >= 0 {
			i = max(0, min(len(ids)-1, i+delta))
			m.selectComment(ids[i])
			return
		}
	}
	ids := m.visibleIDs()
	if len(ids) == 0 {
		return
	}
	i := indexOf(ids, m.selected)
	if i < 0 {
		m.selectEntry(ids[0])
		return
	}
	i = max(0, min(len(ids)-1, i+delta))
	m.selectEntry(ids[i])
}

// jump selects the first or last entry
func (m *Model) jump(last bool) {
	ids := m.visibleIDs()
	if len(ids) == 0 {
		return
	}
	if last {
		m.selectEntry(ids[len(ids)-1])
	} else {
		m.selectEntry(ids[0])
	}
}

// toggleCommentMode moves between the entry and its first comment
func (m *Model) toggleCommentMode() {
	if m.comment != 0 {
		m.comment = 0
		m.follow = render.EntryID(m.selected)
		return
	}
	if ids := m.commentIDs(m.selected); len(ids) > 0 {
		m.selectComment(ids[0])
	}
}

// clampSelection keeps the cursor on something that is shown
func (m *Model) clampSelection() {
	ids := m.visibleIDs()
	if len(ids) == 0 {
		m.selected, m.comment = 0, 0
		return
	}
	if indexOf(ids, m.selected) < 0 {
		m.selectEntry(ids[0])
	}
	if m.comment != 0 && indexOf(m.commentIDs(m.selected), m.comment) < 0 {
		m.comment = 0
	}
}

// clampFocus drops input focus once its panel or edit session is gone
func (m *Model) clampFocus() {
	switch m.focus {
	case focusAddPanel:
		if !m.Library.PanelOpen(m.focusMedia) {
			m.blurInput()
		}
	case focusEdit:
		if _, ok := m.Library.Session(); !ok {
			m.blurInput()
		}
	}
}

// focusID is the input node showing a cursor
func (m Model) focusID() string {
	switch m.focus {
	case focusAddPanel:
		return render.AddPanelID(m.focusMedia) + "/input"
	case focusEdit:
		if s, ok := m.Library.Session(); ok {
			return render.EditAreaID(s.MediaID, s.CommentID) + "/input"
		}
	}
	return ""
}

// sync repaints the list and keeps the cursor in view
func (m *Model) sync() {
	m.clampSelection()
	m.clampFocus()

	opts := render.PaintOptions{Width: m.Width, Focus: m.focusID()}
	if m.selected != 0 {
		opts.SelectedEntry = render.EntryID(m.selected)
		if m.comment != 0 {
			opts.SelectedComment = render.CommentID(m.selected, m.comment)
		}
	}
	m.frame = render.Paint(m.Library.Display(), m.theme, opts)
	m.viewport.SetContent(m.frame.String())

	if m.follow != "" {
		m.ensureVisible(m.follow)
		m.follow = ""
	}
}

// ensureVisible scrolls so the node's first line is on screen
func (m *Model) ensureVisible(id string) {
	line := m.frame.LineOf(id)
	if line < 0 || m.viewport.Height <= 0 {
		return
	}
	switch {
	case line < m.viewport.YOffset:
		m.viewport.SetYOffset(line)
	case line >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}
