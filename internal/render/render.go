package render

import (
	"github.com/mmcdole/logbook/internal/domain"
)

// EmptyKind selects the placeholder shown for an empty list.
type EmptyKind int

const (
	// EmptyStore means nothing has been added yet.
	EmptyStore EmptyKind = iota
	// EmptyResults means a search excluded every entry.
	EmptyResults
)

const (
	MsgEmptyStore   = "Nothing here yet, add something!"
	MsgEmptyResults = "No elements found."
	MsgNoComments   = "No comments"
	PlaceholderID   = "placeholder"
)

func (k EmptyKind) Message() string {
	if k == EmptyResults {
		return MsgEmptyResults
	}
	return MsgEmptyStore
}

// ViewState is the transient UI state that shapes an entry's node.
type ViewState interface {
	// EditDraft returns the draft text when the comment is being edited.
	EditDraft(commentID int64) (string, bool)
	// AddPanel returns the draft when the entry's add-comment panel is open.
	AddPanel(mediaID int64) (string, bool)
	// CommentsHidden reports whether the entry's comment list is collapsed.
	CommentsHidden(mediaID int64) bool
}

type noState struct{}

func (noState) EditDraft(int64) (string, bool) { return "", false }
func (noState) AddPanel(int64) (string, bool)  { return "", false }
func (noState) CommentsHidden(int64) bool      { return false }

// Renderer turns entries into nodes. It never fails.
type Renderer struct {
	state ViewState
}

// NewRenderer creates a renderer reading view state from vs (nil for none).
func NewRenderer(vs ViewState) Renderer {
	if vs == nil {
		vs = noState{}
	}
	return Renderer{state: vs}
}

// RenderAll builds a fresh list, one node per entry in order, or a single
// placeholder when entries is empty.
func (r Renderer) RenderAll(entries []domain.MediaEntry, empty EmptyKind) List {
	if len(entries) == 0 {
		return List{Nodes: []Node{Placeholder(empty)}}
	}
	nodes := make([]Node, len(entries))
	for i, e := range entries {
		nodes[i] = r.RenderOne(e)
	}
	return List{Nodes: nodes}
}

// Placeholder builds the empty-list message node.
func Placeholder(kind EmptyKind) Node {
	return Node{ID: PlaceholderID, Role: RolePlaceholder, Text: kind.Message()}
}

// RenderOne builds the node for a single entry.
func (r Renderer) RenderOne(e domain.MediaEntry) Node {
	id := EntryID(e.ID)
	labels := e.Category.Labels()

	children := []Node{
		{ID: id + "/delete", Role: RoleButton, Label: "×"},
		{ID: id + "/name", Role: RoleName, Text: e.Name},
	}
	if e.CoverImageURL != "" {
		children = append(children, Node{ID: id + "/cover", Role: RoleCover, Text: e.CoverImageURL})
	}
	if e.Synopsis != "" || e.ExternalScore != "" || e.TotalEpisodes != "" {
		children = append(children, metaNode(id, e, labels))
	}
	children = append(children,
		valuesNode(id, e, labels),
		r.commentsNode(e),
	)
	return Node{ID: id, Role: RoleEntry, Children: children}
}

func metaNode(id string, e domain.MediaEntry, labels domain.LabelSet) Node {
	n := Node{ID: id + "/meta", Role: RoleGroup}
	if e.TotalEpisodes != "" {
		n.Children = append(n.Children, Node{ID: id + "/meta/total", Role: RoleField, Label: labels.Total, Text: e.TotalEpisodes})
	}
	if e.ExternalScore != "" {
		n.Children = append(n.Children, Node{ID: id + "/meta/score", Role: RoleField, Label: "Score", Text: e.ExternalScore})
	}
	if e.Synopsis != "" {
		n.Children = append(n.Children, Node{ID: id + "/meta/info", Role: RoleField, Label: labels.Info, Text: StripHTML(e.Synopsis)})
	}
	return n
}

func valuesNode(id string, e domain.MediaEntry, labels domain.LabelSet) Node {
	status := "Incomplete"
	if e.Complete {
		status = "Completed"
	}
	return Node{ID: id + "/edit", Role: RoleGroup, Children: []Node{
		{ID: id + "/edit/status", Role: RoleStatus, Text: status},
		{ID: id + "/edit/type", Role: RoleField, Label: "Type", Text: string(e.Category)},
		{ID: id + "/edit/progress", Role: RoleField, Label: labels.Progress, Text: e.Progress},
		{ID: id + "/edit/score", Role: RoleField, Label: "Score", Text: e.Score},
		{ID: id + "/edit/date", Role: RoleField, Label: "Start Date", Text: e.Date},
	}}
}

func (r Renderer) commentsNode(e domain.MediaEntry) Node {
	id := EntryID(e.ID)
	hasComments := len(e.Comments) > 0
	hidden := r.state.CommentsHidden(e.ID)

	actions := Node{ID: id + "/comment-actions", Role: RoleActions, Label: "Comments:", Children: []Node{
		{ID: id + "/new", Role: RoleButton, Label: "New"},
	}}
	if hasComments {
		toggle := "Hide Comments"
		if hidden {
			toggle = "View Comments"
		}
		actions.Children = append(actions.Children, Node{ID: id + "/toggle-comments", Role: RoleButton, Label: toggle})
	}

	draft, open := r.state.AddPanel(e.ID)
	panelID := AddPanelID(e.ID)
	panel := Node{ID: panelID, Role: RoleAddPanel, Hidden: !open, Children: []Node{
		{ID: panelID + "/input", Role: RoleInput, Label: "Enter comment", Text: draft},
		{ID: panelID + "/submit", Role: RoleButton, Label: "Submit"},
	}}

	list := Node{ID: id + "/comments", Role: RoleCommentList, Hidden: hasComments && hidden}
	if hasComments {
		list.Children = make([]Node, len(e.Comments))
		for i, c := range e.Comments {
			list.Children[i] = r.commentNode(e.ID, c)
		}
	} else {
		list.Children = []Node{{ID: id + "/comments/empty", Role: RoleEmpty, Text: MsgNoComments}}
	}

	return Node{ID: id + "/comment-section", Role: RoleComments, Children: []Node{actions, panel, list}}
}

func (r Renderer) commentNode(mediaID int64, c domain.Comment) Node {
	id := CommentID(mediaID, c.ID)
	editID := EditAreaID(mediaID, c.ID)
	draft, editing := r.state.EditDraft(c.ID)
	if !editing {
		draft = c.Text
	}
	return Node{ID: id, Role: RoleComment, Children: []Node{
		{ID: id + "/text", Role: RoleText, Text: c.Text, Hidden: editing},
		{ID: editID, Role: RoleEditArea, Hidden: !editing, Children: []Node{
			{ID: editID + "/input", Role: RoleInput, Text: draft},
			{ID: editID + "/actions", Role: RoleActions, Children: []Node{
				{ID: editID + "/save", Role: RoleButton, Label: "Save"},
				{ID: editID + "/cancel", Role: RoleButton, Label: "Cancel"},
				{ID: editID + "/delete", Role: RoleButton, Label: "Delete"},
			}},
		}},
	}}
}
