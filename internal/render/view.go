package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the styles used to paint nodes.
type Theme struct {
	Name        lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	Muted       lipgloss.Style
	Status      lipgloss.Style
	Button      lipgloss.Style
	Danger      lipgloss.Style
	Input       lipgloss.Style
	Comment     lipgloss.Style
	Selected    lipgloss.Style
	Gutter      lipgloss.Style
	Placeholder lipgloss.Style
}

// PaintOptions controls selection and layout.
type PaintOptions struct {
	Width           int
	SelectedEntry   string // entry node id
	SelectedComment string // comment node id
	Focus           string // input node id showing a cursor
}

// Span is a clickable column range within a painted line.
type Span struct {
	Start, End int
	ID         string
}

// Frame is a painted list plus the hit map used to resolve mouse clicks.
type Frame struct {
	Lines  []string
	spans  [][]Span
	owners []string
	starts map[string]int
}

// String joins the painted lines.
func (f Frame) String() string { return strings.Join(f.Lines, "\n") }

// HitTest returns the deepest node id at the given cell, or "" for none.
func (f Frame) HitTest(row, col int) string {
	if row < 0 || row >= len(f.Lines) {
		return ""
	}
	for _, s := range f.spans[row] {
		if col >= s.Start && col < s.End {
			return s.ID
		}
	}
	return f.owners[row]
}

// LineOf returns the first painted line of a node, or -1.
func (f Frame) LineOf(id string) int {
	if l, ok := f.starts[id]; ok {
		return l
	}
	return -1
}

type painter struct {
	theme  Theme
	opts   PaintOptions
	frame  Frame
	cur    *strings.Builder
	col    int
	row    int
	spans  []Span
	owner  string
	inLine bool
}

// Paint draws the list. The frame's hit map mirrors the drawn layout.
func Paint(l List, theme Theme, opts PaintOptions) Frame {
	if opts.Width <= 0 {
		opts.Width = 80
	}
	p := &painter{theme: theme, opts: opts, frame: Frame{starts: make(map[string]int)}}
	for i, n := range l.Nodes {
		if i > 0 {
			p.blank()
		}
		p.node(n)
	}
	p.flush()
	return p.frame
}

func (p *painter) begin(owner string) {
	p.flush()
	p.cur = &strings.Builder{}
	p.col = 0
	p.spans = nil
	p.owner = owner
	p.inLine = true
	gutter := "  "
	if p.opts.SelectedEntry != "" && strings.HasPrefix(owner+"/", p.opts.SelectedEntry+"/") {
		gutter = "▌ "
	}
	p.write(gutter, p.theme.Gutter, "")
}

func (p *painter) write(text string, st lipgloss.Style, id string) {
	rendered := st.Render(text)
	w := lipgloss.Width(rendered)
	if id != "" {
		p.spans = append(p.spans, Span{Start: p.col, End: p.col + w, ID: id})
	}
	p.cur.WriteString(rendered)
	p.col += w
}

func (p *painter) flush() {
	if !p.inLine {
		return
	}
	p.frame.Lines = append(p.frame.Lines, p.cur.String())
	p.frame.spans = append(p.frame.spans, p.spans)
	p.frame.owners = append(p.frame.owners, p.owner)
	p.row++
	p.inLine = false
}

func (p *painter) blank() {
	p.flush()
	p.frame.Lines = append(p.frame.Lines, "")
	p.frame.spans = append(p.frame.spans, nil)
	p.frame.owners = append(p.frame.owners, "")
	p.row++
}

// mark records the line the next begin will open.
func (p *painter) mark(id string) {
	if _, ok := p.frame.starts[id]; ok {
		return
	}
	row := p.row
	if p.inLine {
		row++
	}
	p.frame.starts[id] = row
}

func (p *painter) node(n Node) {
	if n.Hidden {
		return
	}
	p.mark(n.ID)
	switch n.Role {
	case RolePlaceholder:
		p.begin("")
		p.write(n.Text, p.theme.Placeholder, "")
	case RoleEntry:
		p.entry(n)
	case RoleName:
		p.begin(n.ID)
		p.write(n.Text, p.theme.Name, n.ID)
	case RoleCover:
		p.begin(n.ID)
		p.write("Cover: ", p.theme.Label, n.ID)
		p.write(n.Text, p.theme.Muted, n.ID)
	case RoleGroup:
		for _, c := range n.Children {
			p.node(c)
		}
	case RoleField:
		p.field(n)
	case RoleStatus:
		p.begin(n.ID)
		p.write(n.Text, p.theme.Status, n.ID)
	case RoleActions:
		p.begin(n.ID)
		if n.Label != "" {
			p.write(n.Label+" ", p.theme.Label, "")
		}
		p.buttons(n.Children)
	case RoleButton:
		p.begin(n.ID)
		p.buttons([]Node{n})
	case RoleComments, RoleCommentList, RoleEditArea, RoleAddPanel:
		for _, c := range n.Children {
			p.node(c)
		}
	case RoleInput:
		p.input(n)
	case RoleComment:
		for _, c := range n.Children {
			p.node(c)
		}
	case RoleText:
		st := p.theme.Comment
		if p.opts.SelectedComment != "" && strings.HasPrefix(n.ID, p.opts.SelectedComment+"/") {
			st = p.theme.Selected
		}
		p.wrapped("  • ", n.Text, st, n.ID)
	case RoleEmpty:
		p.begin(n.ID)
		p.write("  "+n.Text, p.theme.Muted, "")
	}
}

// entry draws the name line with the delete affordance right-aligned.
func (p *painter) entry(n Node) {
	var del *Node
	rest := make([]Node, 0, len(n.Children))
	for i := range n.Children {
		if n.Children[i].Role == RoleButton && strings.HasSuffix(n.Children[i].ID, "/delete") {
			del = &n.Children[i]
			continue
		}
		rest = append(rest, n.Children[i])
	}
	for i, c := range rest {
		p.node(c)
		if i == 0 && c.Role == RoleName && del != nil {
			pad := p.opts.Width - p.col - lipgloss.Width(del.Label) - 2
			if pad < 1 {
				pad = 1
			}
			p.write(strings.Repeat(" ", pad), lipgloss.NewStyle(), "")
			p.write("["+del.Label+"]", p.theme.Danger, del.ID)
		}
	}
}

func (p *painter) field(n Node) {
	if strings.Contains(n.Text, " ") && lipgloss.Width(n.Label)+lipgloss.Width(n.Text)+4 > p.opts.Width {
		p.begin(n.ID)
		p.write(n.Label+":", p.theme.Label, n.ID)
		p.wrapped("  ", n.Text, p.theme.Value, n.ID)
		return
	}
	p.begin(n.ID)
	p.write(n.Label+": ", p.theme.Label, n.ID)
	p.write(n.Text, p.theme.Value, n.ID)
}

func (p *painter) buttons(nodes []Node) {
	for i, b := range nodes {
		if b.Hidden {
			continue
		}
		if i > 0 {
			p.write(" ", lipgloss.NewStyle(), "")
		}
		st := p.theme.Button
		if strings.HasSuffix(b.ID, "/delete") {
			st = p.theme.Danger
		}
		p.write("["+b.Label+"]", st, b.ID)
	}
}

func (p *painter) input(n Node) {
	text := n.Text
	st := p.theme.Input
	if text == "" && n.Label != "" {
		text = n.Label
		st = p.theme.Muted
	}
	if p.opts.Focus == n.ID {
		text = n.Text + "▏"
		st = p.theme.Input
	}
	p.wrapped("  > ", text, st, n.ID)
}

// wrapped writes text word-wrapped to the available width, one line per row.
func (p *painter) wrapped(prefix, text string, st lipgloss.Style, id string) {
	width := p.opts.Width - 2 - lipgloss.Width(prefix)
	if width < 10 {
		width = 10
	}
	body := lipgloss.NewStyle().Width(width).Render(text)
	for i, ln := range strings.Split(body, "\n") {
		p.begin(id)
		if i == 0 {
			p.write(prefix, p.theme.Muted, id)
		} else {
			p.write(strings.Repeat(" ", lipgloss.Width(prefix)), lipgloss.NewStyle(), id)
		}
		p.write(strings.TrimRight(ln, " "), st, id)
	}
}
