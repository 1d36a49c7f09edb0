package filter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labstock/internal/core/apperror"
)

func batchSchema(t *testing.T) Schema {
	t.Helper()
	s, ok := SchemaFor(EntityBatches)
	require.True(t, ok)
	return s
}

func TestToWire_BetweenLeaf(t *testing.T) {
	g := NewGroup(And)
	leaf := NewLeaf("quantity", Between)
	leaf.ValueFrom = 0
	leaf.ValueTo = 30
	g.Children = []Node{leaf}

	w := ToWire(g)
	require.Len(t, w.Items, 1)

	data, err := json.Marshal(w.Items[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"field":"quantity","operator":"between","value":{"from":0,"to":30}}`, string(data))
}

func TestToWire_BetweenFallsBackToValue(t *testing.T) {
	// A range leaf edited from a scalar operator may only carry Value.
	g := NewGroup(And)
	leaf := NewLeaf("quantity", Between)
	leaf.Value = 5
	leaf.ValueTo = 30
	g.Children = []Node{leaf}

	w := ToWire(g)
	data, err := json.Marshal(w.Items[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"field":"quantity","operator":"between","value":{"from":5,"to":30}}`, string(data))
}

func TestToWire_InLeafCoercesScalar(t *testing.T) {
	g := NewGroup(And)
	leaf := NewLeaf("unit", InList)
	leaf.Value = "g"
	g.Children = []Node{leaf}

	w := ToWire(g)
	data, err := json.Marshal(w.Items[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"field":"unit","operator":"in","value":["g"]}`, string(data))
}

func TestToWire_InLeafDropsFalsyMembers(t *testing.T) {
	g := NewGroup(And)
	leaf := NewLeaf("unit", InList)
	leaf.Values = []any{"g", "", nil, "kg", false, float64(0)}
	g.Children = []Node{leaf}

	w := ToWire(g)
	data, err := json.Marshal(w.Items[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"field":"unit","operator":"in","value":["g","kg"]}`, string(data))
}

func TestToWire_IsNullLeafOmitsValue(t *testing.T) {
	g := NewGroup(And)
	leaf := NewLeaf("location", IsNull)
	leaf.Value = "stale" // must not leak onto the wire
	g.Children = []Node{leaf}

	w := ToWire(g)
	data, err := json.Marshal(w.Items[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"field":"location","operator":"is_null"}`, string(data))
}

func TestToWire_PrunesDisabledLeavesRecursively(t *testing.T) {
	inner := NewGroup(Or)
	keep := NewLeaf("status", Equal)
	keep.Value = "available"
	off := NewLeaf("quantity", Greater)
	off.Value = float64(10)
	off.Enabled = false
	inner.Children = []Node{keep, off}

	root := NewGroup(And)
	offTop := NewLeaf("location", IsNull)
	offTop.Enabled = false
	root.Children = []Node{offTop, inner}

	w := ToWire(root)
	require.Len(t, w.Items, 1)
	require.Len(t, w.Items[0].Items, 1)
	assert.Equal(t, "status", w.Items[0].Items[0].Field)

	// Re-deserializing yields a tree with the disabled leaves gone entirely.
	back, err := FromWire(w)
	require.NoError(t, err)
	count := 0
	back.Walk(func(n Node) {
		if _, ok := n.(*Leaf); ok {
			count++
		}
	})
	assert.Equal(t, 1, count)
}

func TestRoundTrip_ModuloIDs(t *testing.T) {
	inner := NewGroup(Or)
	a := NewLeaf("status", Equal)
	a.Value = "available"
	b := NewLeaf("quantity", Between)
	b.ValueFrom = float64(0)
	b.ValueTo = float64(30)
	b.Value = float64(0)
	inner.Children = []Node{a, b}

	root := NewGroup(And)
	c := NewLeaf("unit", InList)
	c.Values = []any{"g", "kg"}
	d := NewLeaf("location", IsNotNull)
	root.Children = []Node{c, d, inner}

	data, err := Marshal(root)
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)

	// Structural equality modulo ids: the wire forms must match exactly.
	again, err := Marshal(back)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))

	// Ids are freshly assigned, never round-tripped.
	assert.NotEqual(t, root.ID, back.ID)

	// Range leaves seed Value from "from".
	leaf := back.findLeafByField("quantity")
	require.NotNil(t, leaf)
	assert.Equal(t, float64(0), leaf.ValueFrom)
	assert.Equal(t, float64(30), leaf.ValueTo)
	assert.Equal(t, float64(0), leaf.Value)
	assert.True(t, leaf.Enabled)
}

// findLeafByField is a test helper; production code addresses leaves by id.
func (g *Group) findLeafByField(field string) *Leaf {
	var found *Leaf
	g.Walk(func(n Node) {
		if l, ok := n.(*Leaf); ok && l.Field == field && found == nil {
			found = l
		}
	})
	return found
}

func TestParse_MalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{"group": "AND", "items": [`))
	require.Error(t, err)
	assert.True(t, apperror.IsMalformedFilter(err))
}

func TestParse_RejectsUnknownCombinator(t *testing.T) {
	_, err := Parse([]byte(`{"group":"XOR","items":[{"field":"name","operator":"eq","value":"x"}]}`))
	require.Error(t, err)
	assert.True(t, apperror.IsMalformedFilter(err))
}

func TestParse_RootMustBeGroup(t *testing.T) {
	_, err := Parse([]byte(`{"field":"name","operator":"eq","value":"x"}`))
	require.Error(t, err)
	assert.True(t, apperror.IsMalformedFilter(err))
}

func TestParse_UnknownFieldAndOperatorPassThrough(t *testing.T) {
	g, err := Parse([]byte(`{"group":"AND","items":[{"field":"no_such_field","operator":"frobnicate","value":1}]}`))
	require.NoError(t, err)
	leaf := g.findLeafByField("no_such_field")
	require.NotNil(t, leaf)
	assert.Equal(t, Key("frobnicate"), leaf.Operator)

	// The schema boundary is where they get rejected.
	err = g.ValidateAgainst(batchSchema(t))
	require.Error(t, err)
}

func TestQueryCodec_RoundTrip(t *testing.T) {
	g := NewGroup(And)
	leaf := NewLeaf("status", Equal)
	leaf.Value = "available"
	g.Children = []Node{leaf}

	encoded, err := EncodeQuery(g)
	require.NoError(t, err)
	assert.NotContains(t, encoded, `"`) // URL-encoded

	back, err := DecodeQuery(encoded)
	require.NoError(t, err)

	want, _ := Marshal(g)
	got, _ := Marshal(back)
	assert.JSONEq(t, string(want), string(got))
}

func TestPreset_ExpiredWithDisabledLeaf(t *testing.T) {
	p, ok := FindPreset("expired")
	require.True(t, ok)

	b := NewBuilder(batchSchema(t))
	require.NoError(t, b.ApplyPreset(p))
	assert.Equal(t, "expired", b.ActivePreset())

	root := b.Root()
	require.Len(t, root.Children, 2)

	// Disable one branch of the OR; the next serialize drops to one item.
	require.NoError(t, b.Toggle(root.Children[0].NodeID()))
	w := ToWire(b.Root())
	assert.Len(t, w.Items, 1)
	assert.Equal(t, "days_until_expiry", w.Items[0].Field)

	// Manual edit clears the active preset marker.
	assert.Empty(t, b.ActivePreset())
}
