package tree

import "strings"

// FindByName searches from the root for the first node whose name matches
// name case-insensitively. The search is pre-order: the current node is
// checked before its children, children left to right, and the first match
// wins. Names are not guaranteed unique, so that ordering is part of the
// contract.
func (t *Tree) FindByName(name string) (NodeID, bool) {
	return t.FindByNameFrom(t.Root(), name)
}

// FindByNameFrom is FindByName restricted to the subtree rooted at start.
func (t *Tree) FindByNameFrom(start NodeID, name string) (NodeID, bool) {
	if strings.EqualFold(t.nodes[start].name, name) {
		return start, true
	}
	for _, child := range t.nodes[start].children {
		if found, ok := t.FindByNameFrom(child, name); ok {
			return found, true
		}
	}
	return None, false
}
