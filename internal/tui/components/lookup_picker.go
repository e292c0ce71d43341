package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/logbook/internal/domain"
	"github.com/mmcdole/logbook/internal/render"
	"github.com/mmcdole/logbook/internal/tui/styles"
)

// maxCandidates caps how many lookup results are listed at once
const maxCandidates = 8

// LookupPicker lists external lookup candidates and holds the chosen one
type LookupPicker struct {
	candidates []domain.LookupResult
	cursor     int
	notice     string
	selected   *domain.SelectedMetadata
}

// SetResults replaces the listed candidates. A non-empty notice is shown
// instead of a list.
func (p *LookupPicker) SetResults(candidates []domain.LookupResult, notice string) {
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	p.candidates = candidates
	p.notice = notice
	p.cursor = 0
}

// Clear hides the candidate list and any notice.
func (p *LookupPicker) Clear() {
	p.candidates = nil
	p.notice = ""
	p.cursor = 0
}

// Select marks meta as chosen and hides the list.
func (p *LookupPicker) Select(meta *domain.SelectedMetadata) {
	p.selected = meta
	p.Clear()
}

// Reset drops the chosen metadata.
func (p *LookupPicker) Reset() {
	p.selected = nil
	p.Clear()
}

// Selected returns the chosen metadata, or nil.
func (p LookupPicker) Selected() *domain.SelectedMetadata {
	return p.selected
}

// HasCandidates reports whether a list is shown.
func (p LookupPicker) HasCandidates() bool {
	return len(p.candidates) > 0
}

// Notice returns the message shown in place of candidates.
func (p LookupPicker) Notice() string {
	return p.notice
}

// HandleKey processes a key press, returns (handled, picked).
func (p *LookupPicker) HandleKey(key string) (handled bool, picked *domain.LookupResult) {
	if len(p.candidates) == 0 {
		return false, nil
	}

	switch key {
	case "j", "down":
		if p.cursor < len(p.candidates)-1 {
			p.cursor++
		}
		return true, nil
	case "k", "up":
		if p.cursor > 0 {
			p.cursor--
		}
		return true, nil
	case "enter":
		chosen := p.candidates[p.cursor]
		return true, &chosen
	}
	return false, nil
}

// View renders the selection or the candidate list
func (p LookupPicker) View(width int, focused bool, labels domain.LabelSet) string {
	switch {
	case p.selected != nil:
		return p.selectedView(width, labels)
	case p.notice != "":
		return styles.DimStyle.Render(p.notice)
	case len(p.candidates) == 0:
		return ""
	}

	var lines []string
	for i, c := range p.candidates {
		text := styles.Truncate(candidateLine(c, labels), width-2)
		switch {
		case focused && i == p.cursor:
			lines = append(lines, styles.SelectedItemStyle.Render(text))
		default:
			lines = append(lines, styles.NormalItemStyle.Render(text))
		}
	}
	return strings.Join(lines, "\n")
}

func (p LookupPicker) selectedView(width int, labels domain.LabelSet) string {
	m := p.selected
	lines := []string{
		styles.AccentStyle.Render("Selected: ") + styles.TitleStyle.Render(styles.Truncate(m.Title, width-12)),
	}
	if m.TotalEpisodes != "" {
		lines = append(lines, styles.SubtitleStyle.Render(labels.Total+": ")+m.TotalEpisodes)
	}
	if m.ExternalScore != "" {
		lines = append(lines, styles.SubtitleStyle.Render("Score: ")+m.ExternalScore)
	}
	if m.Synopsis != "" {
		body := lipgloss.NewStyle().Width(width).Foreground(styles.LightGray).
			Render(styles.Truncate(render.StripHTML(m.Synopsis), width*3))
		lines = append(lines, body)
	}
	return strings.Join(lines, "\n")
}

func candidateLine(c domain.LookupResult, labels domain.LabelSet) string {
	var extra []string
	if c.TotalEpisodes != "" {
		extra = append(extra, fmt.Sprintf("%s %s", labels.Total, c.TotalEpisodes))
	}
	if c.ExternalScore != "" {
		extra = append(extra, "★ "+c.ExternalScore)
	}
	if len(extra) == 0 {
		return c.Title
	}
	return c.Title + "  (" + strings.Join(extra, ", ") + ")"
}
