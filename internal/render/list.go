package render

// List is the rendered, ordered set of top-level nodes.
type List struct {
	Nodes []Node
}

// Index returns the position of the top-level node with id, or -1.
func (l *List) Index(id string) int {
	for i := range l.Nodes {
		if l.Nodes[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns the node with id anywhere in the tree.
func (l *List) Find(id string) (*Node, bool) {
	for i := range l.Nodes {
		if n, ok := l.Nodes[i].Find(id); ok {
			return n, true
		}
	}
	return nil, false
}

// Replace swaps the top-level node with the same id in place.
// It reports false and leaves the list untouched when the target is absent.
func (l *List) Replace(n Node) bool {
	i := l.Index(n.ID)
	if i < 0 {
		return false
	}
	l.Nodes[i] = n
	return true
}

// Append adds a node at the end, dropping the placeholder if present.
func (l *List) Append(n Node) {
	if l.IsPlaceholder() {
		l.Nodes = l.Nodes[:0]
	}
	l.Nodes = append(l.Nodes, n)
}

// Remove deletes the top-level node with id.
func (l *List) Remove(id string) bool {
	i := l.Index(id)
	if i < 0 {
		return false
	}
	l.Nodes = append(l.Nodes[:i], l.Nodes[i+1:]...)
	return true
}

// IsPlaceholder reports whether the list shows only an empty-state message.
func (l *List) IsPlaceholder() bool {
	return len(l.Nodes) == 1 && l.Nodes[0].Role == RolePlaceholder
}

// Placeholder returns the empty-state message, or "".
func (l *List) Placeholder() string {
	if l.IsPlaceholder() {
		return l.Nodes[0].Text
	}
	return ""
}

// EntryIDs lists the ids of the entry nodes in display order.
func (l *List) EntryIDs() []string {
	ids := make([]string, 0, len(l.Nodes))
	for _, n := range l.Nodes {
		if n.Role == RoleEntry {
			ids = append(ids, n.ID)
		}
	}
	return ids
}
