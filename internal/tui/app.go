package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/logbook/internal/adapter"
	"github.com/mmcdole/logbook/internal/domain"
	"github.com/mmcdole/logbook/internal/library"
	"github.com/mmcdole/logbook/internal/lookup"
	"github.com/mmcdole/logbook/internal/render"
	"github.com/mmcdole/logbook/internal/search"
	"github.com/mmcdole/logbook/internal/tui/components"
	"github.com/mmcdole/logbook/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateSearching
	StateForm
	StateHelp
)

// inputFocus names the inline input receiving typed keys
type inputFocus int

const (
	focusNone inputFocus = iota
	focusAddPanel
	focusEdit
)

// Options configures the model
type Options struct {
	DefaultCategory domain.Category
	DateFormat      string
	Debounce        time.Duration
	Prefs           adapter.Prefs
	PrefsPath       string // empty disables saving
	Now             func() time.Time
	Logger          *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	Library  *library.State
	Commands *library.Commands
	Lookup   *lookup.Service

	// UI Components
	Form     components.MediaForm
	search   textinput.Model
	input    textinput.Model
	viewport viewport.Model

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg   string
	StatusIsErr bool
	Loading     bool

	selected   int64 // entry id, 0 for none
	comment    int64 // comment id within the selected entry, 0 at entry level
	focus      inputFocus
	focusMedia int64
	follow     string // node to scroll into view on the next sync
	frame      render.Frame

	theme  render.Theme
	opts   Options
	prefs  adapter.Prefs
	logger *slog.Logger
}

// NewModel creates a new application model
func NewModel(lib *library.State, cmds *library.Commands, lk *lookup.Service, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DateFormat == "" {
		opts.DateFormat = "02-01-2006"
	}
	if !opts.DefaultCategory.Known() {
		opts.DefaultCategory = domain.CategoryAnime
	}

	si := textinput.New()
	si.Prompt = "/ "
	si.Placeholder = "Search by name"
	si.PromptStyle = styles.FilterPromptStyle
	si.TextStyle = styles.FilterStyle

	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 2000

	vp := viewport.New(80, 20)

	return Model{
		State:    StateBrowsing,
		Library:  lib,
		Commands: cmds,
		Lookup:   lk,
		Form:     components.NewMediaForm(opts.Debounce),
		search:   si,
		input:    input,
		viewport: vp,
		Loading:  true,
		theme:    styles.Theme(),
		opts:     opts,
		prefs:    opts.Prefs,
		logger:   opts.Logger,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return LoadMediaCmd(m.Commands)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.sync()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case components.LookupDueMsg:
		return m.handleLookupDue(msg)

	case LookupMsg:
		return m.handleLookup(msg)

	case MediaLoadedMsg:
		m.Loading = false
		m.Library.Load(msg.Entries)
		m.selected, m.comment = 0, 0
		return m, nil

	case MediaCreatedMsg:
		if m.Library.ApplyCreated(msg.Entry) {
			m.selectEntry(msg.Entry.ID)
		}
		return m.status("Added: "+msg.Entry.Name, false)

	case MediaUpdatedMsg:
		m.Library.ApplyUpdated(msg.ID, msg.Fields)
		return m, nil

	case MediaDeletedMsg:
		neighbor := m.neighborOf(msg.Entry.ID)
		if m.Library.ApplyDeleted(msg.Entry) && m.selected == msg.Entry.ID {
			m.selectEntry(neighbor)
		}
		return m, nil

	case CommentCreatedMsg:
		m.Library.ApplyCommentCreated(msg.Comment)
		return m, nil

	case CommentUpdatedMsg:
		m.Library.ApplyCommentUpdated(msg.Comment)
		return m, nil

	case CommentDeletedMsg:
		m.Library.ApplyCommentDeleted(msg.Comment)
		if m.comment == msg.Comment.ID {
			m.comment = 0
		}
		return m, nil

	case ErrMsg:
		m.Loading = false
		m.logger.Debug("command failed", "context", msg.Context, "error", msg.Err)
		return m.notifyErr(msg.Err)

	case StatusMsg:
		return m.status(msg.Message, msg.IsError)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// Cursor blink and other component messages
	var cmd tea.Cmd
	switch {
	case m.State == StateForm:
		m.Form, cmd, _ = m.Form.Update(msg)
	case m.State == StateSearching:
		m.search, cmd = m.search.Update(msg)
	case m.focus != focusNone:
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// status sets a temporary status message
func (m Model) status(text string, isErr bool) (Model, tea.Cmd) {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	delay := 3 * time.Second
	if isErr {
		delay = 5 * time.Second
	}
	return m, ClearStatusCmd(delay)
}

// notifyErr surfaces err in the status bar. Errors without a user notice
// are only logged.
func (m Model) notifyErr(err error) (Model, tea.Cmd) {
	notice := domain.UserNotice(err)
	if notice == "" {
		m.logger.Debug("error not surfaced", "error", err)
		return m, nil
	}
	return m.status(notice, true)
}

// handleLookupDue starts a search once typing paused
func (m Model) handleLookupDue(msg components.LookupDueMsg) (Model, tea.Cmd) {
	if m.State != StateForm || m.Lookup == nil || msg.Seq != m.Form.Seq() {
		return m, nil
	}
	query, category, ok := m.Form.LookupRequest()
	if !ok {
		return m, nil
	}
	return m, LookupCmd(m.Lookup, msg.Seq, query, category)
}

// handleLookup shows results in the form. Results for a closed or since
// edited form are dropped.
func (m Model) handleLookup(msg LookupMsg) (Model, tea.Cmd) {
	current := m.State == StateForm && msg.Seq == m.Form.Seq()
	if msg.Err != nil {
		if current {
			return m.notifyErr(msg.Err)
		}
		return m, nil
	}
	if !m.Form.SetLookup(msg.Seq, msg.Result.Candidates, msg.Result.Notice, msg.Result.Skipped) {
		m.logger.Debug("dropping stale lookup results", "query", msg.Result.Query, "seq", msg.Seq)
	}
	return m, nil
}

// defaultCategory is the category a new entry starts with
func (m Model) defaultCategory() domain.Category {
	if c, ok := search.ResolveCategory(m.prefs.LastCategory); ok {
		return c
	}
	return m.opts.DefaultCategory
}

func (m Model) today() string {
	return m.opts.Now().Format(m.opts.DateFormat)
}

// openAddForm shows an empty media form
func (m Model) openAddForm() (Model, tea.Cmd) {
	m.blurInput()
	m.State = StateForm
	cmd := m.Form.ShowAdd(m.defaultCategory(), m.today())
	return m, cmd
}

// openEditForm shows the media form filled from an entry
func (m Model) openEditForm(id int64) (Model, tea.Cmd) {
	e, ok := m.Library.Find(id)
	if !ok {
		return m, nil
	}
	m.blurInput()
	m.State = StateForm
	cmd := m.Form.ShowEdit(e)
	return m, cmd
}

// submitForm validates the form and sends it. Invalid input keeps the
// form open.
func (m Model) submitForm() (Model, tea.Cmd) {
	fields := m.Form.Fields()
	if err := m.Commands.ValidateMedia(fields); err != nil {
		return m.notifyErr(err)
	}

	mode, id := m.Form.Mode(), m.Form.MediaID()
	m.Form.Hide()
	m.State = StateBrowsing

	cmds := []tea.Cmd{m.rememberCategory(fields.Category)}
	if mode == components.FormEdit {
		cmds = append(cmds, UpdateMediaCmd(m.Commands, id, fields))
	} else {
		cmds = append(cmds, CreateMediaCmd(m.Commands, fields))
	}
	return m, tea.Batch(cmds...)
}

// rememberCategory stores the last used category in the preferences file
func (m *Model) rememberCategory(c domain.Category) tea.Cmd {
	if m.opts.PrefsPath == "" || string(c) == m.prefs.LastCategory {
		return nil
	}
	m.prefs.LastCategory = string(c)
	prefs, path, logger := m.prefs, m.opts.PrefsPath, m.logger
	return func() tea.Msg {
		if err := adapter.SavePrefs(path, prefs); err != nil {
			logger.Warn("failed to save preferences", "path", path, "error", err)
		}
		return nil
	}
}
