package filter

import (
	"labstock/internal/core/id"
)

// Combinator joins the children of a group.
type Combinator string

const (
	And Combinator = "AND"
	Or  Combinator = "OR"
)

// DefaultMaxDepth bounds group nesting. The root group sits at depth 1.
const DefaultMaxDepth = 3

// Node is either a *Group or a *Leaf.
type Node interface {
	// NodeID returns the UI-only identifier. IDs are never transmitted.
	NodeID() string

	// IsEnabled reports whether the node takes part in serialization.
	IsEnabled() bool

	node()
}

// Leaf is a single field/operator/value condition.
type Leaf struct {
	ID       string
	Field    string
	Operator Key

	// Value is the scalar payload for plain operators. For range operators
	// it mirrors ValueFrom as an edit seed, so that switching the leaf back
	// to a non-range operator keeps a sensible value.
	Value     any
	ValueFrom any
	ValueTo   any

	// Values is the payload for set-membership operators (in / not_in).
	Values []any

	Enabled bool
}

// NewLeaf creates an enabled leaf with a fresh id.
func NewLeaf(field string, op Key) *Leaf {
	return &Leaf{
		ID:       id.NewString(),
		Field:    field,
		Operator: op,
		Enabled:  true,
	}
}

func (l *Leaf) NodeID() string { return l.ID }
func (l *Leaf) IsEnabled() bool { return l.Enabled }
func (l *Leaf) node() {}

// ListValues returns the normalized set payload: Values when present, a
// scalar Value coerced into a single-element set otherwise. Falsy members
// are dropped.
func (l *Leaf) ListValues() []any {
	vals := l.Values
	if vals == nil && l.Value != nil {
		vals = []any{l.Value}
	}
	out := make([]any, 0, len(vals))
	for _, v := range vals {
		if !isFalsy(v) {
			out = append(out, v)
		}
	}
	return out
}

// RangeBounds returns the range payload, falling back to the scalar Value
// for "from" on leaves edited over from a scalar operator.
func (l *Leaf) RangeBounds() (from, to any) {
	from = l.ValueFrom
	if from == nil {
		from = l.Value
	}
	return from, l.ValueTo
}

// clearValues drops every value payload. Called when a field or operator
// change makes the current value shape invalid.
func (l *Leaf) clearValues() {
	l.Value = nil
	l.ValueFrom = nil
	l.ValueTo = nil
	l.Values = nil
}

// Group is a boolean combination of leaves and nested groups.
type Group struct {
	ID         string
	Combinator Combinator
	Children   []Node
	Enabled    bool
}

// NewGroup creates an enabled group with a fresh id and no children.
// Callers must keep the non-empty invariant; Builder does this for you.
func NewGroup(c Combinator) *Group {
	return &Group{
		ID:         id.NewString(),
		Combinator: c,
		Enabled:    true,
	}
}

func (g *Group) NodeID() string { return g.ID }
func (g *Group) IsEnabled() bool { return g.Enabled }
func (g *Group) node() {}

// Walk visits every node in the subtree, group first, depth first.
func (g *Group) Walk(fn func(Node)) {
	fn(g)
	for _, child := range g.Children {
		if sub, ok := child.(*Group); ok {
			sub.Walk(fn)
			continue
		}
		fn(child)
	}
}

// ActiveCount returns the number of enabled leaves in the subtree.
// Leaves under a disabled group do not count: they are pruned on serialize.
func (g *Group) ActiveCount() int {
	if !g.Enabled {
		return 0
	}
	n := 0
	for _, child := range g.Children {
		switch c := child.(type) {
		case *Group:
			n += c.ActiveCount()
		case *Leaf:
			if c.Enabled {
				n++
			}
		}
	}
	return n
}

// depthOf returns the depth of target within the subtree rooted at g
// (g itself has the given depth), or 0 when target is not found.
func (g *Group) depthOf(target *Group, depth int) int {
	if g == target {
		return depth
	}
	for _, child := range g.Children {
		if sub, ok := child.(*Group); ok {
			if d := sub.depthOf(target, depth+1); d > 0 {
				return d
			}
		}
	}
	return 0
}

// findGroup locates a group by node id in the subtree.
func (g *Group) findGroup(nodeID string) *Group {
	if g.ID == nodeID {
		return g
	}
	for _, child := range g.Children {
		if sub, ok := child.(*Group); ok {
			if found := sub.findGroup(nodeID); found != nil {
				return found
			}
		}
	}
	return nil
}

// findLeaf locates a leaf by node id in the subtree.
func (g *Group) findLeaf(nodeID string) *Leaf {
	for _, child := range g.Children {
		switch c := child.(type) {
		case *Leaf:
			if c.ID == nodeID {
				return c
			}
		case *Group:
			if found := c.findLeaf(nodeID); found != nil {
				return found
			}
		}
	}
	return nil
}
