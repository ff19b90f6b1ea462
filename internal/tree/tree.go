// Package tree implements the hierarchical chart of accounts. Nodes live in
// an arena indexed by NodeID: parents hold child ids and children hold a
// parent id, so the parent/child cycle of the logical tree never becomes a
// reference cycle. A NodeID stays valid for the lifetime of its Tree.
package tree

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/ledgertree-dev/ledgertree/internal/model"
)

// NodeID addresses a node within its Tree's arena.
type NodeID int

// None is the null node id, returned where no node applies.
const None NodeID = -1

// Kind discriminates the three node variants.
type Kind int

const (
	KindRoot Kind = iota
	KindTag
	KindAccount
)

// String returns the string representation of the node kind.
func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindTag:
		return "tag"
	case KindAccount:
		return "account"
	default:
		return "unknown"
	}
}

// NodeError reports a node construction failure with enough context to
// identify the offending node.
type NodeError struct {
	Name   string
	Level  int
	Reason string
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("node %q (level %d): %s", e.Name, e.Level, e.Reason)
}

type node struct {
	kind     Kind
	level    int
	name     string
	parent   NodeID
	children []NodeID
	acctType *model.PrimaryAccountType
	amount   decimal.Decimal
}

// Tree is the account hierarchy: a single root, tag nodes for categories and
// sub-categories, and terminal account nodes. Not safe for concurrent use.
type Tree struct {
	nodes []node
}

// New creates a tree holding only the root node (level 0, named "root").
func New() *Tree {
	return &Tree{nodes: []node{{
		kind:   KindRoot,
		level:  0,
		name:   "root",
		parent: None,
	}}}
}

// Root returns the root node's id.
func (t *Tree) Root() NodeID { return 0 }

// Len returns the number of nodes in the arena, attached or not.
func (t *Tree) Len() int { return len(t.nodes) }

func (t *Tree) validID(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// NewTagNode creates a category node under parent without attaching it; call
// AddChild to expose it as a child. A level-1 node must carry an explicit
// primary account type. Deeper nodes ignore the argument and share the type
// of their nearest level-1 ancestor, resolved once here and cached.
func (t *Tree) NewTagNode(level int, name string, parent NodeID, acctType *model.PrimaryAccountType) (NodeID, error) {
	if level < 1 {
		return None, &NodeError{Name: name, Level: level, Reason: "tag node level must be >= 1"}
	}
	if !t.validID(parent) {
		return None, &NodeError{Name: name, Level: level, Reason: "tag node requires a parent"}
	}
	if got := t.nodes[parent].level + 1; level != got {
		return None, &NodeError{Name: name, Level: level, Reason: fmt.Sprintf("level must be parent level + 1 (%d)", got)}
	}

	resolved := acctType
	if level > 1 {
		var err error
		resolved, err = t.resolveAccountType(parent)
		if err != nil {
			return None, &NodeError{Name: name, Level: level, Reason: err.Error()}
		}
	} else if acctType == nil {
		return None, &NodeError{Name: name, Level: level, Reason: "level 1 tag node requires a primary account type"}
	}

	t.nodes = append(t.nodes, node{
		kind:     KindTag,
		level:    level,
		name:     name,
		parent:   parent,
		acctType: resolved,
	})
	return NodeID(len(t.nodes) - 1), nil
}

// resolveAccountType walks ancestors from start up to the nearest level-1
// node and returns its primary account type.
func (t *Tree) resolveAccountType(start NodeID) (*model.PrimaryAccountType, error) {
	cur := start
	for t.nodes[cur].level != 1 {
		cur = t.nodes[cur].parent
		if cur == None {
			return nil, fmt.Errorf("no level 1 ancestor reachable from %q", t.nodes[start].name)
		}
	}
	return t.nodes[cur].acctType, nil
}

// NewAccountNode creates a terminal account node under parent without
// attaching it. The node shares its parent's already-resolved primary
// account type, so no ancestor walk is needed.
func (t *Tree) NewAccountNode(level int, name string, parent NodeID) (NodeID, error) {
	if !t.validID(parent) {
		return None, &NodeError{Name: name, Level: level, Reason: "account node requires a parent"}
	}
	if level < 2 {
		return None, &NodeError{Name: name, Level: level, Reason: "account node level must be >= 2"}
	}
	if got := t.nodes[parent].level + 1; level != got {
		return None, &NodeError{Name: name, Level: level, Reason: fmt.Sprintf("level must be parent level + 1 (%d)", got)}
	}

	t.nodes = append(t.nodes, node{
		kind:     KindAccount,
		level:    level,
		name:     name,
		parent:   parent,
		acctType: t.nodes[parent].acctType,
	})
	return NodeID(len(t.nodes) - 1), nil
}

// AddChild appends child to parent's child list. Account nodes are terminal;
// attaching under one is a no-op flagged in the log.
func (t *Tree) AddChild(parent, child NodeID) {
	if t.nodes[parent].kind == KindAccount {
		logrus.WithFields(logrus.Fields{
			"parent": t.nodes[parent].name,
			"child":  t.nodes[child].name,
		}).Warn("ignoring attempt to add a child to a terminal account node")
		return
	}
	t.nodes[parent].children = append(t.nodes[parent].children, child)
}

// Kind returns the node's kind.
func (t *Tree) Kind(id NodeID) Kind { return t.nodes[id].kind }

// Name returns the node's name.
func (t *Tree) Name(id NodeID) string { return t.nodes[id].name }

// SetName renames the node.
func (t *Tree) SetName(id NodeID, name string) { t.nodes[id].name = name }

// Level returns the node's depth; the root is level 0.
func (t *Tree) Level(id NodeID) int { return t.nodes[id].level }

// Parent returns the node's parent, or None for the root.
func (t *Tree) Parent(id NodeID) NodeID { return t.nodes[id].parent }

// Children returns the node's child ids in insertion order.
func (t *Tree) Children(id NodeID) []NodeID { return t.nodes[id].children }

// AccountType returns the node's primary account type; nil for the root.
func (t *Tree) AccountType(id NodeID) *model.PrimaryAccountType { return t.nodes[id].acctType }

// Amount returns the node's current amount.
func (t *Tree) Amount(id NodeID) decimal.Decimal { return t.nodes[id].amount }

// SetAmount overwrites the node's amount.
func (t *Tree) SetAmount(id NodeID, amount decimal.Decimal) { t.nodes[id].amount = amount }

// Ancestors returns the node's ancestors from its parent up to the root.
func (t *Tree) Ancestors(id NodeID) []NodeID {
	var out []NodeID
	for cur := t.nodes[id].parent; cur != None; cur = t.nodes[cur].parent {
		out = append(out, cur)
	}
	return out
}

// Descendants returns every node below id in pre-order.
func (t *Tree) Descendants(id NodeID) []NodeID {
	var out []NodeID
	var walk func(NodeID)
	walk = func(n NodeID) {
		for _, c := range t.nodes[n].children {
			out = append(out, c)
			walk(c)
		}
	}
	walk(id)
	return out
}
