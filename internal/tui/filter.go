package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// handleSearchKey edits the search bar. Enter submits the term and clears
// the bar; esc leaves the current results as they are.
func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.Library.Search(m.search.Value())
		m.closeSearch()
		m.jump(false)
		return m, nil
	case tea.KeyEsc:
		m.closeSearch()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *Model) closeSearch() {
	m.search.SetValue("")
	m.search.Blur()
	m.State = StateBrowsing
}
