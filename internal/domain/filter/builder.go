package filter

import (
	"labstock/internal/core/apperror"
)

// Builder owns one filter tree and enforces its invariants: groups are never
// empty, nesting is depth-bounded and every leaf's operator is legal for its
// field's declared type. All mutations are synchronous; the tree has exactly
// one writer.
type Builder struct {
	schema   Schema
	root     *Group
	maxDepth int

	// activePreset holds the name of the last applied preset. Any manual
	// edit clears it.
	activePreset string
}

// BuilderOption customizes a Builder.
type BuilderOption func(*Builder)

// WithMaxDepth overrides the default nesting bound.
func WithMaxDepth(d int) BuilderOption {
	return func(b *Builder) {
		if d > 0 {
			b.maxDepth = d
		}
	}
}

// NewBuilder creates a builder whose tree holds one default leaf for the
// schema's first field.
func NewBuilder(schema Schema, opts ...BuilderOption) *Builder {
	b := &Builder{
		schema:   schema,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.root = NewGroup(And)
	b.root.Children = []Node{b.defaultLeaf()}
	return b
}

// Root returns the tree. Mutate only through the builder.
func (b *Builder) Root() *Group {
	return b.root
}

// Schema returns the active field schema.
func (b *Builder) Schema() Schema {
	return b.schema
}

// ActivePreset returns the name of the applied preset, or "" after any
// manual edit.
func (b *Builder) ActivePreset() string {
	return b.activePreset
}

// ActiveCount returns the number of enabled leaves in the tree.
func (b *Builder) ActiveCount() int {
	return b.root.ActiveCount()
}

// defaultLeaf builds a leaf on the schema's first field with its first legal
// operator. Falls back to eq when the schema is empty.
func (b *Builder) defaultLeaf() *Leaf {
	if len(b.schema) == 0 {
		return NewLeaf("", Equal)
	}
	f := b.schema[0]
	return NewLeaf(f.Field, FirstOperatorFor(f.Type).Key)
}

// AddLeaf appends a default leaf to the group and returns it.
func (b *Builder) AddLeaf(groupID string) (*Leaf, error) {
	g := b.root.findGroup(groupID)
	if g == nil {
		return nil, apperror.NewNotFound("filter group", groupID)
	}
	leaf := b.defaultLeaf()
	g.Children = append(g.Children, leaf)
	b.markEdited()
	return leaf, nil
}

// AddGroup appends a nested group (seeded with one default leaf) to the
// parent and returns it. Adding beneath a group at the maximum depth is a
// no-op and returns nil.
func (b *Builder) AddGroup(parentID string, c Combinator) (*Group, error) {
	parent := b.root.findGroup(parentID)
	if parent == nil {
		return nil, apperror.NewNotFound("filter group", parentID)
	}
	if b.root.depthOf(parent, 1) >= b.maxDepth {
		return nil, nil
	}
	sub := NewGroup(c)
	sub.Children = []Node{b.defaultLeaf()}
	parent.Children = append(parent.Children, sub)
	b.markEdited()
	return sub, nil
}

// Remove deletes a direct or nested child node. Removing the last child of a
// group inserts a default leaf so the group never becomes empty.
func (b *Builder) Remove(nodeID string) error {
	if nodeID == b.root.ID {
		return apperror.NewValidation("cannot remove the root group")
	}
	if !removeFrom(b.root, nodeID, b.defaultLeaf) {
		return apperror.NewNotFound("filter node", nodeID)
	}
	b.markEdited()
	return nil
}

func removeFrom(g *Group, nodeID string, defaultLeaf func() *Leaf) bool {
	for i, child := range g.Children {
		if child.NodeID() == nodeID {
			g.Children = append(g.Children[:i], g.Children[i+1:]...)
			if len(g.Children) == 0 {
				g.Children = []Node{defaultLeaf()}
			}
			return true
		}
		if sub, ok := child.(*Group); ok {
			if removeFrom(sub, nodeID, defaultLeaf) {
				return true
			}
		}
	}
	return false
}

// Toggle flips a node's enabled flag. The node stays in the tree; only
// serialization and the active-filter count are affected.
func (b *Builder) Toggle(nodeID string) error {
	if leaf := b.root.findLeaf(nodeID); leaf != nil {
		leaf.Enabled = !leaf.Enabled
		b.markEdited()
		return nil
	}
	if g := b.root.findGroup(nodeID); g != nil && g != b.root {
		g.Enabled = !g.Enabled
		b.markEdited()
		return nil
	}
	return apperror.NewNotFound("filter node", nodeID)
}

// SetCombinator switches a group between AND and OR.
func (b *Builder) SetCombinator(groupID string, c Combinator) error {
	g := b.root.findGroup(groupID)
	if g == nil {
		return apperror.NewNotFound("filter group", groupID)
	}
	g.Combinator = c
	b.markEdited()
	return nil
}

// SetField changes a leaf's field and revalidates its operator: if the
// current operator remains legal for the new field's type it is kept,
// otherwise the first legal operator wins and the values are cleared
// (their shape may no longer fit the new operator/type pairing).
func (b *Builder) SetField(leafID, field string) error {
	leaf := b.root.findLeaf(leafID)
	if leaf == nil {
		return apperror.NewNotFound("filter leaf", leafID)
	}
	fs, ok := b.schema.Find(field)
	if !ok {
		return apperror.NewValidation("unknown filter field").WithDetail("field", field)
	}

	leaf.Field = field
	if op, known := Lookup(leaf.Operator); !known || !op.AppliesTo(fs.Type) {
		leaf.Operator = FirstOperatorFor(fs.Type).Key
		leaf.clearValues()
	}
	b.markEdited()
	return nil
}

// SetOperator changes a leaf's operator. Switching between value shapes
// (scalar / range / set / none) clears payloads that no longer apply.
func (b *Builder) SetOperator(leafID string, k Key) error {
	leaf := b.root.findLeaf(leafID)
	if leaf == nil {
		return apperror.NewNotFound("filter leaf", leafID)
	}
	op, known := Lookup(k)
	if !known {
		return apperror.NewValidation("unknown filter operator").WithDetail("operator", string(k))
	}
	if fs, ok := b.schema.Find(leaf.Field); ok && !op.AppliesTo(fs.Type) {
		return apperror.NewValidation("operator not applicable to field type").
			WithDetail("operator", string(k)).
			WithDetail("field", leaf.Field).
			WithDetail("type", string(fs.Type))
	}

	prev, _ := Lookup(leaf.Operator)
	leaf.Operator = k
	if op.NoValue {
		leaf.clearValues()
	} else if op.IsRange != prev.IsRange {
		leaf.ValueFrom = nil
		leaf.ValueTo = nil
	}
	b.markEdited()
	return nil
}

// SetValue assigns the scalar value of a leaf.
func (b *Builder) SetValue(leafID string, v any) error {
	leaf := b.root.findLeaf(leafID)
	if leaf == nil {
		return apperror.NewNotFound("filter leaf", leafID)
	}
	leaf.Value = v
	b.markEdited()
	return nil
}

// SetRange assigns the from/to pair of a range leaf. Value mirrors from as
// an edit seed.
func (b *Builder) SetRange(leafID string, from, to any) error {
	leaf := b.root.findLeaf(leafID)
	if leaf == nil {
		return apperror.NewNotFound("filter leaf", leafID)
	}
	leaf.ValueFrom = from
	leaf.ValueTo = to
	leaf.Value = from
	b.markEdited()
	return nil
}

// SetValues assigns the member list of a set leaf.
func (b *Builder) SetValues(leafID string, values []any) error {
	leaf := b.root.findLeaf(leafID)
	if leaf == nil {
		return apperror.NewNotFound("filter leaf", leafID)
	}
	leaf.Values = values
	b.markEdited()
	return nil
}

// ApplyPreset replaces the whole tree with the preset's filter and marks it
// active until the next manual edit.
func (b *Builder) ApplyPreset(p Preset) error {
	root, err := FromWire(p.Filter)
	if err != nil {
		return err
	}
	b.root = root
	b.activePreset = p.Name
	return nil
}

// Reset discards the tree and starts over with one default leaf.
func (b *Builder) Reset() {
	b.root = NewGroup(And)
	b.root.Children = []Node{b.defaultLeaf()}
	b.activePreset = ""
}

func (b *Builder) markEdited() {
	b.activePreset = ""
}
