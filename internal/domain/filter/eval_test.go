package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matcherFor(t *testing.T, presetName string) *Matcher {
	t.Helper()
	p, ok := FindPreset(presetName)
	require.True(t, ok)
	g, err := FromWire(p.Filter)
	require.NoError(t, err)
	m, err := CompileMatcher(g)
	require.NoError(t, err)
	return m
}

func TestMatcher_LowStockPreset(t *testing.T) {
	m := matcherFor(t, "low_stock")

	match, err := m.Matches(map[string]any{"quantity": float64(5), "status": "available"})
	require.NoError(t, err)
	assert.True(t, match)

	match, err = m.Matches(map[string]any{"quantity": float64(50), "status": "available"})
	require.NoError(t, err)
	assert.False(t, match)

	match, err = m.Matches(map[string]any{"quantity": float64(5), "status": "depleted"})
	require.NoError(t, err)
	assert.False(t, match)
}

func TestMatcher_ExpiredPresetIsDisjunctive(t *testing.T) {
	m := matcherFor(t, "expired")

	for _, row := range []map[string]any{
		{"status": "expired", "days_until_expiry": float64(12)},
		{"status": "available", "days_until_expiry": float64(-3)},
	} {
		match, err := m.Matches(row)
		require.NoError(t, err)
		assert.True(t, match, "row %v must match", row)
	}

	match, err := m.Matches(map[string]any{"status": "available", "days_until_expiry": float64(10)})
	require.NoError(t, err)
	assert.False(t, match)
}

func TestMatcher_StringAndNullOperators(t *testing.T) {
	g := NewGroup(And)
	starts := NewLeaf("name", StartsWith)
	starts.Value = "Sodium"
	noLoc := NewLeaf("location", IsNull)
	g.Children = []Node{starts, noLoc}

	m, err := CompileMatcher(g)
	require.NoError(t, err)

	match, err := m.Matches(map[string]any{"name": "Sodium chloride"})
	require.NoError(t, err)
	assert.True(t, match)

	match, err = m.Matches(map[string]any{"name": "Sodium chloride", "location": "C-12"})
	require.NoError(t, err)
	assert.False(t, match)
}

func TestMatcher_SetMembership(t *testing.T) {
	g := NewGroup(And)
	leaf := NewLeaf("unit", NotInList)
	leaf.Values = []any{"g", "kg"}
	g.Children = []Node{leaf}

	m, err := CompileMatcher(g)
	require.NoError(t, err)

	match, err := m.Matches(map[string]any{"unit": "ml"})
	require.NoError(t, err)
	assert.True(t, match)

	match, err = m.Matches(map[string]any{"unit": "g"})
	require.NoError(t, err)
	assert.False(t, match)
}

func TestMatcher_DisabledLeavesAreIgnored(t *testing.T) {
	g := NewGroup(And)
	on := NewLeaf("status", Equal)
	on.Value = "available"
	off := NewLeaf("quantity", Greater)
	off.Value = float64(100)
	off.Enabled = false
	g.Children = []Node{on, off}

	m, err := CompileMatcher(g)
	require.NoError(t, err)

	match, err := m.Matches(map[string]any{"status": "available", "quantity": float64(1)})
	require.NoError(t, err)
	assert.True(t, match)
}

func TestMatcher_CountMatches(t *testing.T) {
	m := matcherFor(t, "available")
	rows := []map[string]any{
		{"status": "available"},
		{"status": "depleted"},
		{"status": "available"},
	}
	n, err := m.CountMatches(rows)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
