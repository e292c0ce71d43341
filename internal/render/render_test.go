package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/logbook/internal/domain"
)

type fakeState struct {
	editing map[int64]string
	panels  map[int64]string
	hidden  map[int64]bool
}

func (f fakeState) EditDraft(id int64) (string, bool) { d, ok := f.editing[id]; return d, ok }
func (f fakeState) AddPanel(id int64) (string, bool)  { d, ok := f.panels[id]; return d, ok }
func (f fakeState) CommentsHidden(id int64) bool      { return f.hidden[id] }

func sample() []domain.MediaEntry {
	return []domain.MediaEntry{
		{ID: 1, Name: "Naruto", Category: domain.CategoryAnime, Progress: "12", Score: "8", Complete: true, Date: "01-01-2024",
			TotalEpisodes: "220", Synopsis: "<p>A <b>ninja</b> story.</p>",
			Comments: []domain.Comment{{ID: 10, MediaID: 1, Text: "great"}}},
		{ID: 2, Name: "Dune", Category: domain.CategoryBook, Progress: "100", Score: "9"},
	}
}

func TestRenderAllPlaceholders(t *testing.T) {
	r := NewRenderer(nil)

	l := r.RenderAll(nil, EmptyStore)
	assert.Equal(t, MsgEmptyStore, l.Placeholder())

	l = r.RenderAll([]domain.MediaEntry{}, EmptyResults)
	assert.Equal(t, MsgEmptyResults, l.Placeholder())
	assert.NotEqual(t, MsgEmptyStore, MsgEmptyResults)
}

func TestRenderAllOneNodePerEntryInOrder(t *testing.T) {
	l := NewRenderer(nil).RenderAll(sample(), EmptyStore)
	assert.Equal(t, []string{"entry/1", "entry/2"}, l.EntryIDs())
	assert.Empty(t, l.Placeholder())
}

func TestRenderOneMatchesRenderAll(t *testing.T) {
	r := NewRenderer(fakeState{panels: map[int64]string{2: "draft"}})
	entries := sample()
	l := r.RenderAll(entries, EmptyStore)
	for i, e := range entries {
		assert.Equal(t, l.Nodes[i], r.RenderOne(e))
	}
}

func TestCategoryLabelsInNode(t *testing.T) {
	r := NewRenderer(nil)
	n := r.RenderOne(sample()[1])
	f, ok := n.Find("entry/2/edit/progress")
	require.True(t, ok)
	assert.Equal(t, "Pages read", f.Label)
	assert.Equal(t, "100", f.Text)

	st, ok := n.Find("entry/2/edit/status")
	require.True(t, ok)
	assert.Equal(t, "Incomplete", st.Text)

	_, ok = n.Find("entry/2/meta")
	assert.False(t, ok, "no external info block without metadata")
}

func TestMetadataBlock(t *testing.T) {
	n := NewRenderer(nil).RenderOne(sample()[0])
	total, ok := n.Find("entry/1/meta/total")
	require.True(t, ok)
	assert.Equal(t, "Total episodes", total.Label)

	info, ok := n.Find("entry/1/meta/info")
	require.True(t, ok)
	assert.Equal(t, "Synopsis", info.Label)
	assert.Equal(t, "A ninja story.", info.Text)
}

func TestCommentsSection(t *testing.T) {
	r := NewRenderer(nil)
	n := r.RenderOne(sample()[0])

	panel, ok := n.Find(AddPanelID(1))
	require.True(t, ok)
	assert.True(t, panel.Hidden)

	toggle, ok := n.Find("entry/1/toggle-comments")
	require.True(t, ok)
	assert.Equal(t, "Hide Comments", toggle.Label)

	text, ok := n.Find(CommentID(1, 10) + "/text")
	require.True(t, ok)
	assert.False(t, text.Hidden)
	edit, _ := n.Find(EditAreaID(1, 10))
	assert.True(t, edit.Hidden)

	empty := r.RenderOne(sample()[1])
	_, ok = empty.Find("entry/2/toggle-comments")
	assert.False(t, ok, "toggle only when comments exist")
	msg, ok := empty.Find("entry/2/comments/empty")
	require.True(t, ok)
	assert.Equal(t, MsgNoComments, msg.Text)
}

func TestCommentsCollapsed(t *testing.T) {
	n := NewRenderer(fakeState{hidden: map[int64]bool{1: true}}).RenderOne(sample()[0])
	toggle, _ := n.Find("entry/1/toggle-comments")
	assert.Equal(t, "View Comments", toggle.Label)
	assert.False(t, n.Visible(CommentID(1, 10)+"/text"))
}

func TestEditingCommentShowsDraft(t *testing.T) {
	n := NewRenderer(fakeState{editing: map[int64]string{10: "grea"}}).RenderOne(sample()[0])
	text, _ := n.Find(CommentID(1, 10) + "/text")
	assert.True(t, text.Hidden)
	input, ok := n.Find(EditAreaID(1, 10) + "/input")
	require.True(t, ok)
	assert.Equal(t, "grea", input.Text)
	assert.True(t, n.Visible(EditAreaID(1, 10)+"/save"))
}

func TestListReplaceAndRemove(t *testing.T) {
	r := NewRenderer(nil)
	entries := sample()
	l := r.RenderAll(entries, EmptyStore)
	sibling := l.Nodes[1]

	entries[0].Name = "Boruto"
	require.True(t, l.Replace(r.RenderOne(entries[0])))
	name, _ := l.Find("entry/1/name")
	assert.Equal(t, "Boruto", name.Text)
	assert.Equal(t, sibling, l.Nodes[1])

	assert.False(t, l.Replace(r.RenderOne(domain.MediaEntry{ID: 99})))
	assert.Len(t, l.Nodes, 2)

	assert.True(t, l.Remove("entry/1"))
	assert.False(t, l.Remove("entry/1"))
	assert.Equal(t, []string{"entry/2"}, l.EntryIDs())
}

func TestAppendDropsPlaceholder(t *testing.T) {
	r := NewRenderer(nil)
	l := r.RenderAll(nil, EmptyStore)
	l.Append(r.RenderOne(sample()[1]))
	assert.Equal(t, []string{"entry/2"}, l.EntryIDs())
	assert.Len(t, l.Nodes, 1)
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		id   string
		want Target
		ok   bool
	}{
		{"entry/5", Target{MediaID: 5}, true},
		{"entry/5/delete", Target{MediaID: 5, Action: "delete"}, true},
		{"entry/5/add-comment/submit", Target{MediaID: 5, Action: "add-comment/submit"}, true},
		{"entry/5/comment/10", Target{MediaID: 5, CommentID: 10}, true},
		{"entry/5/comment/10/edit/save", Target{MediaID: 5, CommentID: 10, Action: "edit/save"}, true},
		{"placeholder", Target{}, false},
		{"entry/x", Target{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, ok := ParseTarget(tt.id)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "plain text", StripHTML("plain text"))
	assert.Equal(t, "Line one Line two", StripHTML("Line one<br>Line two"))
	assert.Equal(t, "Tom & Jerry", StripHTML("Tom &amp; Jerry"))
	assert.Equal(t, "kept", StripHTML("<script>x()</script><i>kept</i>"))
}

func TestPaintHitTest(t *testing.T) {
	l := NewRenderer(nil).RenderAll(sample(), EmptyStore)
	f := Paint(l, Theme{}, PaintOptions{Width: 60, SelectedEntry: "entry/2"})

	row := f.LineOf("entry/1/name")
	require.GreaterOrEqual(t, row, 0)
	assert.True(t, strings.Contains(f.Lines[row], "Naruto"))
	assert.Equal(t, "entry/1/name", f.HitTest(row, 3))

	delCol := strings.Index(f.Lines[row], "[×]")
	require.Greater(t, delCol, 0)
	assert.Equal(t, "entry/1/delete", f.HitTest(row, lipglossCol(f.Lines[row], delCol)))

	dune := f.LineOf("entry/2/name")
	assert.True(t, strings.HasPrefix(f.Lines[dune], "▌ "))

	assert.Equal(t, "", f.HitTest(-1, 0))
	assert.Equal(t, "", f.HitTest(len(f.Lines), 0))
}

func TestPaintPlaceholder(t *testing.T) {
	f := Paint(NewRenderer(nil).RenderAll(nil, EmptyResults), Theme{}, PaintOptions{})
	assert.Contains(t, f.String(), MsgEmptyResults)
	assert.Equal(t, "", f.HitTest(0, 2))
}

// lipglossCol converts a byte offset in an unstyled line to a cell column.
func lipglossCol(line string, byteOff int) int {
	return len([]rune(line[:byteOff]))
}
