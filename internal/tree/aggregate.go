package tree

// Aggregate folds amounts upward through the subtree rooted at id and
// returns id for chaining. The traversal is post-order: a leaf keeps its
// amount; an internal node's accumulator starts at the node's own current
// amount (a tag node may have been assigned a direct amount before
// aggregation) and adds each child's aggregated amount in child-list order.
//
// Running Aggregate twice without re-deriving leaf amounts double-counts
// every propagated total. Callers own the ordering of builds; there is
// deliberately no guard here.
func (t *Tree) Aggregate(id NodeID) NodeID {
	children := t.nodes[id].children
	if len(children) == 0 {
		return id
	}

	total := t.nodes[id].amount
	for _, child := range children {
		t.Aggregate(child)
		total = total.Add(t.nodes[child].amount)
	}
	t.nodes[id].amount = total
	return id
}
