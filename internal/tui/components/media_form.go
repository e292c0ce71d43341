package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/logbook/internal/domain"
	"github.com/mmcdole/logbook/internal/search"
	"github.com/mmcdole/logbook/internal/tui/styles"
)

// DefaultDebounce is the pause after typing before a lookup fires
const DefaultDebounce = 500 * time.Millisecond

// FormMode tells whether the form creates or edits an entry
type FormMode int

const (
	FormAdd FormMode = iota
	FormEdit
)

// FormResult is the outcome of a single form update
type FormResult int

const (
	FormNone FormResult = iota
	FormSubmitted
	FormCancelled
)

type formField int

const (
	fieldName formField = iota
	fieldCategory
	fieldProgress
	fieldScore
	fieldComplete
	fieldDate
	fieldResults
)

// LookupDueMsg fires once typing has paused. Seq identifies the form
// state that scheduled it; a newer edit makes it stale.
type LookupDueMsg struct {
	Seq int
}

// MediaForm is the add/edit entry modal
type MediaForm struct {
	visible  bool
	mode     FormMode
	mediaID  int64
	name     textinput.Model
	category textinput.Model
	progress textinput.Model
	score    textinput.Model
	date     textinput.Model
	complete bool
	resolved domain.Category
	focus    formField
	picker   LookupPicker
	seq      int
	debounce time.Duration
	keys     FormKeyMap
	width    int
}

func newField(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 30
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle
	return ti
}

// NewMediaForm creates a hidden form
func NewMediaForm(debounce time.Duration) MediaForm {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return MediaForm{
		name:     newField("Title", 200),
		category: newField("Anime, Manga, Book, Series, Movie", 20),
		progress: newField("0", 10),
		score:    newField("7", 10),
		date:     newField("dd-mm-yyyy", 10),
		debounce: debounce,
		keys:     DefaultFormKeyMap(),
		width:    60,
	}
}

// ShowAdd opens an empty form with the usual starting values
func (f *MediaForm) ShowAdd(category domain.Category, today string) tea.Cmd {
	f.reset()
	f.mode = FormAdd
	f.mediaID = 0
	f.category.SetValue(string(category))
	f.progress.SetValue("0")
	f.score.SetValue("7")
	f.date.SetValue(today)
	f.resolve()
	return f.setFocus(fieldName)
}

// ShowEdit opens the form filled from an existing entry
func (f *MediaForm) ShowEdit(e domain.MediaEntry) tea.Cmd {
	f.reset()
	f.mode = FormEdit
	f.mediaID = e.ID
	f.name.SetValue(e.Name)
	f.category.SetValue(string(e.Category))
	f.progress.SetValue(e.Progress)
	f.score.SetValue(e.Score)
	f.date.SetValue(e.Date)
	f.complete = e.Complete
	f.resolve()
	if !f.resolved.Known() {
		f.resolved = e.Category
	}
	f.picker.Select(e.Metadata())
	return f.setFocus(fieldName)
}

func (f *MediaForm) reset() {
	f.visible = true
	for _, in := range f.inputs() {
		in.SetValue("")
		in.Blur()
	}
	f.complete = false
	f.picker.Reset()
	f.seq++
}

// Hide dismisses the form. Pending lookups become stale.
func (f *MediaForm) Hide() {
	f.visible = false
	f.seq++
	for _, in := range f.inputs() {
		in.Blur()
	}
}

// IsVisible returns whether the form is shown
func (f MediaForm) IsVisible() bool { return f.visible }

// Mode returns whether the form adds or edits
func (f MediaForm) Mode() FormMode { return f.mode }

// MediaID returns the entry being edited, or 0
func (f MediaForm) MediaID() int64 { return f.mediaID }

// Seq identifies the latest scheduled lookup
func (f MediaForm) Seq() int { return f.seq }

// SetWidth sets the modal's outer width
func (f *MediaForm) SetWidth(w int) {
	f.width = max(min(w-4, 72), 40)
	for _, in := range f.inputs() {
		in.Width = f.width - 24
	}
}

// Fields collects the typed values. An unresolved category is left empty.
func (f MediaForm) Fields() domain.MediaFields {
	return domain.MediaFields{
		Name:     f.name.Value(),
		Category: f.resolved,
		Progress: strings.TrimSpace(f.progress.Value()),
		Score:    strings.TrimSpace(f.score.Value()),
		Complete: f.complete,
		Date:     strings.TrimSpace(f.date.Value()),
		Metadata: f.picker.Selected(),
	}
}

// LookupRequest returns the query to search for. ok is false once
// metadata has been chosen.
func (f MediaForm) LookupRequest() (query string, category domain.Category, ok bool) {
	if !f.visible || f.picker.Selected() != nil {
		return "", "", false
	}
	return f.name.Value(), f.resolved, true
}

// SetLookup shows lookup results for seq. It reports false for a stale
// or closed form; the results are dropped then.
func (f *MediaForm) SetLookup(seq int, candidates []domain.LookupResult, notice string, skipped bool) bool {
	if !f.visible || seq != f.seq || f.picker.Selected() != nil {
		return false
	}
	if skipped {
		f.picker.Clear()
		return true
	}
	f.picker.SetResults(candidates, notice)
	return true
}

// Candidates reports whether lookup results are listed
func (f MediaForm) Candidates() bool { return f.picker.HasCandidates() }

func (f *MediaForm) inputs() []*textinput.Model {
	return []*textinput.Model{&f.name, &f.category, &f.progress, &f.score, &f.date}
}

func (f *MediaForm) input(field formField) *textinput.Model {
	switch field {
	case fieldName:
		return &f.name
	case fieldCategory:
		return &f.category
	case fieldProgress:
		return &f.progress
	case fieldScore:
		return &f.score
	case fieldDate:
		return &f.date
	}
	return nil
}

func (f *MediaForm) order() []formField {
	fields := []formField{fieldName}
	if f.picker.HasCandidates() {
		fields = append(fields, fieldResults)
	}
	return append(fields, fieldCategory, fieldProgress, fieldScore, fieldComplete, fieldDate)
}

func (f *MediaForm) setFocus(field formField) tea.Cmd {
	for _, in := range f.inputs() {
		in.Blur()
	}
	f.focus = field
	if in := f.input(field); in != nil {
		return in.Focus()
	}
	return nil
}

func (f *MediaForm) move(delta int) tea.Cmd {
	order := f.order()
	idx := 0
	for i, field := range order {
		if field == f.focus {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(order)) % len(order)
	return f.setFocus(order[idx])
}

func (f *MediaForm) resolve() bool {
	c, _ := search.ResolveCategory(f.category.Value())
	changed := c != f.resolved
	f.resolved = c
	return changed
}

func (f *MediaForm) scheduleLookup() tea.Cmd {
	f.seq++
	if f.picker.Selected() != nil {
		return nil
	}
	seq := f.seq
	return tea.Tick(f.debounce, func(time.Time) tea.Msg {
		return LookupDueMsg{Seq: seq}
	})
}

func (f *MediaForm) pick(c domain.LookupResult) tea.Cmd {
	meta := c
	f.picker.Select(&meta)
	f.name.SetValue(c.Title)
	f.seq++
	return f.setFocus(fieldProgress)
}

// ResetSelection drops chosen metadata and clears the name
func (f *MediaForm) ResetSelection() tea.Cmd {
	f.picker.Reset()
	f.name.SetValue("")
	f.seq++
	return f.setFocus(fieldName)
}

// Update handles input events, returns (form, cmd, result)
func (f MediaForm) Update(msg tea.Msg) (MediaForm, tea.Cmd, FormResult) {
	if !f.visible {
		return f, nil, FormNone
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, f.keys.Cancel):
			f.Hide()
			return f, nil, FormCancelled
		case key.Matches(keyMsg, f.keys.Submit):
			return f, nil, FormSubmitted
		case key.Matches(keyMsg, f.keys.Reset):
			cmd := f.ResetSelection()
			return f, cmd, FormNone
		case key.Matches(keyMsg, f.keys.Next):
			cmd := f.move(1)
			return f, cmd, FormNone
		case key.Matches(keyMsg, f.keys.Prev):
			cmd := f.move(-1)
			return f, cmd, FormNone
		}

		switch f.focus {
		case fieldResults:
			if handled, picked := f.picker.HandleKey(keyMsg.String()); handled {
				if picked != nil {
					cmd := f.pick(*picked)
					return f, cmd, FormNone
				}
				return f, nil, FormNone
			}
		case fieldComplete:
			if key.Matches(keyMsg, f.keys.Toggle) {
				f.complete = !f.complete
				return f, nil, FormNone
			}
		}
		if key.Matches(keyMsg, f.keys.Enter) {
			return f, nil, FormSubmitted
		}
	}

	in := f.input(f.focus)
	if in == nil {
		return f, nil, FormNone
	}
	before := in.Value()
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	if in.Value() == before {
		return f, cmd, FormNone
	}

	switch f.focus {
	case fieldName:
		lookup := f.scheduleLookup()
		return f, tea.Batch(cmd, lookup), FormNone
	case fieldCategory:
		if f.resolve() {
			f.picker.Clear()
			lookup := f.scheduleLookup()
			return f, tea.Batch(cmd, lookup), FormNone
		}
	}
	return f, cmd, FormNone
}

// View renders the media form
func (f MediaForm) View() string {
	if !f.visible {
		return ""
	}

	labels := f.resolved.Labels()
	inner := f.width - 6

	title := "Add media"
	if f.mode == FormEdit {
		title = "Edit media"
	}

	row := func(field formField, label, value string) string {
		ls := styles.FieldLabelStyle
		if f.focus == field {
			ls = styles.FocusedLabelStyle
		}
		return ls.Render(label) + value
	}

	categoryHint := styles.ErrorStyle.Render(" ?")
	if f.resolved != "" {
		categoryHint = styles.DimStyle.Render(" → " + string(f.resolved))
	}
	check := "[ ]"
	if f.complete {
		check = "[x]"
	}

	lines := []string{
		styles.ModalTitleStyle.Render(title),
		row(fieldName, "Name", f.name.View()),
	}
	if pv := f.picker.View(inner, f.focus == fieldResults, labels); pv != "" {
		lines = append(lines, "", pv, "")
	}
	lines = append(lines,
		row(fieldCategory, "Type", f.category.View()+categoryHint),
		row(fieldProgress, labels.Progress, f.progress.View()),
		row(fieldScore, "Score", f.score.View()),
		row(fieldComplete, "Completed", check),
		row(fieldDate, "Start Date", f.date.View()),
		"",
		styles.HelpKeyStyle.Render("tab")+styles.HelpDescStyle.Render(" next  ")+
			styles.HelpKeyStyle.Render("enter")+styles.HelpDescStyle.Render(" "+f.submitLabel()+"  ")+
			styles.HelpKeyStyle.Render("C-r")+styles.HelpDescStyle.Render(" reset  ")+
			styles.HelpKeyStyle.Render("esc")+styles.HelpDescStyle.Render(" cancel"),
	)

	return styles.ModalStyle.Width(f.width).Render(strings.Join(lines, "\n"))
}

func (f MediaForm) submitLabel() string {
	if f.mode == FormEdit {
		return "update"
	}
	return "add"
}
