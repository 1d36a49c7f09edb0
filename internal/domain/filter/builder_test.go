package filter

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_StartsWithOneDefaultLeaf(t *testing.T) {
	b := NewBuilder(batchSchema(t))
	root := b.Root()
	require.Len(t, root.Children, 1)

	leaf, ok := root.Children[0].(*Leaf)
	require.True(t, ok)
	assert.Equal(t, "lot_number", leaf.Field)
	assert.Equal(t, Equal, leaf.Operator)
	assert.True(t, leaf.Enabled)
}

func TestBuilder_RemoveLastChildInsertsDefaultLeaf(t *testing.T) {
	b := NewBuilder(batchSchema(t))
	first := b.Root().Children[0]

	require.NoError(t, b.Remove(first.NodeID()))
	require.Len(t, b.Root().Children, 1, "group must never be empty")
	assert.NotEqual(t, first.NodeID(), b.Root().Children[0].NodeID())
}

func TestBuilder_MaxDepthIsANoOp(t *testing.T) {
	b := NewBuilder(batchSchema(t)) // default max depth 3

	lvl2, err := b.AddGroup(b.Root().ID, Or)
	require.NoError(t, err)
	require.NotNil(t, lvl2)

	lvl3, err := b.AddGroup(lvl2.ID, And)
	require.NoError(t, err)
	require.NotNil(t, lvl3)

	lvl4, err := b.AddGroup(lvl3.ID, Or)
	require.NoError(t, err)
	assert.Nil(t, lvl4, "nesting beyond max depth must be a no-op")
	assert.Len(t, lvl3.Children, 1, "no-op must not grow the group")
}

func TestBuilder_SetFieldKeepsLegalOperator(t *testing.T) {
	b := NewBuilder(batchSchema(t))
	leaf, err := b.AddLeaf(b.Root().ID)
	require.NoError(t, err)

	// eq is legal for both string and number fields: keep it.
	require.NoError(t, b.SetValue(leaf.ID, "ACME-1"))
	require.NoError(t, b.SetField(leaf.ID, "quantity"))
	assert.Equal(t, Equal, leaf.Operator)
	assert.Equal(t, "ACME-1", leaf.Value, "legal operator keeps the value")
}

func TestBuilder_SetFieldFallsBackAndClearsValue(t *testing.T) {
	b := NewBuilder(batchSchema(t))
	leaf, err := b.AddLeaf(b.Root().ID)
	require.NoError(t, err)

	require.NoError(t, b.SetField(leaf.ID, "quantity"))
	require.NoError(t, b.SetOperator(leaf.ID, Between))
	require.NoError(t, b.SetRange(leaf.ID, float64(0), float64(30)))

	// between is illegal for enums: fall back to the first legal operator
	// and clear the now mis-shaped values.
	require.NoError(t, b.SetField(leaf.ID, "status"))
	assert.Equal(t, Equal, leaf.Operator)
	assert.Nil(t, leaf.Value)
	assert.Nil(t, leaf.ValueFrom)
	assert.Nil(t, leaf.ValueTo)
}

func TestBuilder_SetOperatorRejectsIllegalPairing(t *testing.T) {
	b := NewBuilder(batchSchema(t))
	leaf, err := b.AddLeaf(b.Root().ID)
	require.NoError(t, err)
	require.NoError(t, b.SetField(leaf.ID, "status"))

	err = b.SetOperator(leaf.ID, Between)
	require.Error(t, err)
}

func TestBuilder_ToggleAffectsCountNotMembership(t *testing.T) {
	b := NewBuilder(batchSchema(t))
	leaf, err := b.AddLeaf(b.Root().ID)
	require.NoError(t, err)
	require.Len(t, b.Root().Children, 2)
	assert.Equal(t, 2, b.ActiveCount())

	require.NoError(t, b.Toggle(leaf.ID))
	assert.Len(t, b.Root().Children, 2, "toggle must not remove the leaf")
	assert.Equal(t, 1, b.ActiveCount())

	require.NoError(t, b.Toggle(leaf.ID))
	assert.Equal(t, 2, b.ActiveCount())
}

func TestBuilder_ApplyPresetThenEditClearsMarker(t *testing.T) {
	p, ok := FindPreset("low_stock")
	require.True(t, ok)

	b := NewBuilder(batchSchema(t))
	require.NoError(t, b.ApplyPreset(p))
	assert.Equal(t, "low_stock", b.ActivePreset())

	leaf := b.Root().findLeafByField("quantity")
	require.NotNil(t, leaf)
	require.NoError(t, b.SetValue(leaf.ID, float64(5)))
	assert.Empty(t, b.ActivePreset())
}

func TestBuilder_NonEmptyGroupsUnderRandomMutations(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := NewBuilder(batchSchema(t))

	for i := 0; i < 500; i++ {
		var groups []*Group
		var leaves []*Leaf
		b.Root().Walk(func(n Node) {
			switch c := n.(type) {
			case *Group:
				groups = append(groups, c)
			case *Leaf:
				leaves = append(leaves, c)
			}
		})

		switch rng.Intn(4) {
		case 0:
			_, err := b.AddLeaf(groups[rng.Intn(len(groups))].ID)
			require.NoError(t, err)
		case 1:
			_, err := b.AddGroup(groups[rng.Intn(len(groups))].ID, Or)
			require.NoError(t, err)
		case 2:
			require.NoError(t, b.Remove(leaves[rng.Intn(len(leaves))].ID))
		case 3:
			g := groups[rng.Intn(len(groups))]
			if g != b.Root() {
				require.NoError(t, b.Remove(g.ID))
			}
		}

		b.Root().Walk(func(n Node) {
			if g, ok := n.(*Group); ok {
				assert.NotEmpty(t, g.Children, "iteration %d left an empty group", i)
			}
		})
	}
}

func TestBuilder_ResetRestoresDefaultTree(t *testing.T) {
	b := NewBuilder(batchSchema(t))
	_, err := b.AddLeaf(b.Root().ID)
	require.NoError(t, err)
	_, err = b.AddGroup(b.Root().ID, Or)
	require.NoError(t, err)

	b.Reset()
	require.Len(t, b.Root().Children, 1)
	_, isLeaf := b.Root().Children[0].(*Leaf)
	assert.True(t, isLeaf)
	assert.Empty(t, b.ActivePreset())
}
