package tui

// Vertical layout: title and search line on top, status line at the bottom
const (
	headerHeight = 2
	footerHeight = 1
	ChromeHeight = headerHeight + footerHeight
)

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}
	m.viewport.Width = m.Width
	m.viewport.Height = max(1, m.Height-ChromeHeight)
	m.search.Width = max(10, m.Width-4)
	m.input.Width = max(10, m.Width-8)
	m.Form.SetWidth(m.Width)
}
