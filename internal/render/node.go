// Package render projects entries into a tree of display nodes.
package render

import (
	"strconv"
	"strings"

	"github.com/mmcdole/logbook/internal/domain"
)

// Role tells the painter how to draw a node.
type Role int

const (
	RolePlaceholder Role = iota
	RoleEntry
	RoleName
	RoleCover
	RoleGroup
	RoleField
	RoleStatus
	RoleActions
	RoleButton
	RoleComments
	RoleAddPanel
	RoleInput
	RoleCommentList
	RoleComment
	RoleText
	RoleEditArea
	RoleEmpty
)

// Node is one element of the display tree. IDs are slash-separated paths;
// every node inside an entry or comment extends that entry's or comment's id.
type Node struct {
	ID       string
	Role     Role
	Label    string
	Text     string
	Hidden   bool
	Children []Node
}

// Find returns the descendant (or self) with the given id.
func (n *Node) Find(id string) (*Node, bool) {
	if n.ID == id {
		return n, true
	}
	for i := range n.Children {
		if found, ok := n.Children[i].Find(id); ok {
			return found, true
		}
	}
	return nil, false
}

// Visible reports whether the node exists and neither it nor any ancestor is hidden.
func (n *Node) Visible(id string) bool {
	v, found := n.visible(id)
	return found && v
}

func (n *Node) visible(id string) (bool, bool) {
	if n.ID == id {
		return !n.Hidden, true
	}
	for i := range n.Children {
		if v, found := n.Children[i].visible(id); found {
			return v && !n.Hidden, true
		}
	}
	return false, false
}

// Node ids.

func EntryID(mediaID int64) string {
	return "entry/" + domain.FormatID(mediaID)
}

func CommentID(mediaID, commentID int64) string {
	return EntryID(mediaID) + "/comment/" + domain.FormatID(commentID)
}

func EditAreaID(mediaID, commentID int64) string {
	return CommentID(mediaID, commentID) + "/edit"
}

func AddPanelID(mediaID int64) string {
	return EntryID(mediaID) + "/add-comment"
}

// Target is a parsed click target.
type Target struct {
	MediaID   int64
	CommentID int64  // zero unless inside a comment
	Action    string // remaining path below the entry or comment, e.g. "delete", "edit/save"
}

// ParseTarget decodes a node id produced by this package.
func ParseTarget(id string) (Target, bool) {
	parts := strings.Split(id, "/")
	if len(parts) < 2 || parts[0] != "entry" {
		return Target{}, false
	}
	var t Target
	var ok bool
	if t.MediaID, ok = parseInt(parts[1]); !ok {
		return Target{}, false
	}
	rest := parts[2:]
	if len(rest) >= 2 && rest[0] == "comment" {
		if t.CommentID, ok = parseInt(rest[1]); !ok {
			return Target{}, false
		}
		rest = rest[2:]
	}
	t.Action = strings.Join(rest, "/")
	return t, true
}

func parseInt(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	return n, err == nil
}
