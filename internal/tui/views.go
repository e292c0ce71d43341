package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/logbook/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		lipgloss.NewStyle().Height(m.viewport.Height).Render(m.viewport.View()),
		m.renderFooter(),
	)

	// Overlay media form if visible
	if m.Form.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.Form.View())
	}

	return view
}

// renderHeader renders the title line and the search line
func (m Model) renderHeader() string {
	title := styles.TitleStyle.Render("logbook")
	count := styles.DimStyle.Render(countLabel(m.Library.Len()))
	gap := max(1, m.Width-lipgloss.Width(title)-lipgloss.Width(count))
	top := title + strings.Repeat(" ", gap) + count

	var second string
	switch {
	case m.State == StateSearching:
		second = m.search.View()
	case m.Library.SearchBanner() != "":
		second = styles.AccentStyle.Render(m.Library.SearchBanner()) +
			styles.DimStyle.Render("  (esc to clear)")
	default:
		second = styles.DimStyle.Render("/ search  a add  ? help")
	}
	return top + "\n" + lipgloss.NewStyle().MaxWidth(max(m.Width, 1)).Render(second)
}

func countLabel(n int) string {
	switch n {
	case 0:
		return ""
	case 1:
		return "1 entry"
	}
	return fmt.Sprintf("%d entries", n)
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	var left string
	if m.Loading {
		left = styles.DimStyle.Render("Loading...")
	} else if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	}

	// Center section: hints for the focused input
	var center string
	switch m.focus {
	case focusAddPanel:
		center = hint("enter", "submit") + "  " + hint("esc", "close")
	case focusEdit:
		center = hint("C-s", "save") + "  " + hint("esc", "cancel") + "  " + hint("C-d", "delete")
	default:
		if m.comment != 0 {
			center = hint("e", "edit") + "  " + hint("C-d", "delete") + "  " + hint("tab", "back")
		}
	}

	right := hint("?", "help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		gap := max(0, m.Width-leftWidth-rightWidth)
		return left + strings.Repeat(" ", gap) + right
	}

	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

func hint(k, desc string) string {
	return styles.AccentStyle.Render(k) + styles.DimStyle.Render(" "+desc)
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
NAVIGATION                      ENTRIES
  j/k        Up/down               a      Add
  g/G        First/last entry      Enter  Edit (or edit comment)
  PgUp/PgDn  Scroll                x      Delete
  tab        Entries/comments      /      Search by name
  mouse      Click to act          esc    Clear search
                                   r      Reload

COMMENTS                        OTHER
  c          New comment           q      Quit
  v          Hide/view comments    ?      This help
  e          Edit comment
  C-s        Save edit
  C-d        Delete comment

Press ? or esc to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}
