package postgres

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labstock/internal/domain/filter"
)

var testCols = IdentityColumns([]string{"lot_number", "quantity", "status", "unit", "location"}).
	With(ColumnMap{"days_until_expiry": "(expires_at::date - CURRENT_DATE)"})

func toSQL(t *testing.T, g *filter.Group) (string, []any) {
	t.Helper()
	pred, err := BuildPredicate(g, testCols)
	require.NoError(t, err)
	require.NotNil(t, pred)

	q := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("id").From("inv_batches").Where(pred)
	sql, args, err := q.ToSql()
	require.NoError(t, err)
	return sql, args
}

func TestBuildPredicate_FlatAndGroup(t *testing.T) {
	g := filter.NewGroup(filter.And)
	a := filter.NewLeaf("status", filter.Equal)
	a.Value = "available"
	b := filter.NewLeaf("quantity", filter.LessOrEqual)
	b.Value = 10
	g.Children = []filter.Node{a, b}

	sql, args := toSQL(t, g)
	assert.Equal(t, "SELECT id FROM inv_batches WHERE (status = $1 AND quantity <= $2)", sql)
	assert.Equal(t, []any{"available", 10}, args)
}

func TestBuildPredicate_NestedOrGroup(t *testing.T) {
	inner := filter.NewGroup(filter.Or)
	x := filter.NewLeaf("status", filter.Equal)
	x.Value = "expired"
	y := filter.NewLeaf("days_until_expiry", filter.Less)
	y.Value = 0
	inner.Children = []filter.Node{x, y}

	root := filter.NewGroup(filter.And)
	lot := filter.NewLeaf("lot_number", filter.StartsWith)
	lot.Value = "ACME"
	root.Children = []filter.Node{lot, inner}

	sql, args := toSQL(t, root)
	assert.Equal(t,
		"SELECT id FROM inv_batches WHERE (lot_number ILIKE $1 AND (status = $2 OR (expires_at::date - CURRENT_DATE) < $3))",
		sql)
	assert.Equal(t, []any{"ACME%", "expired", 0}, args)
}

func TestBuildPredicate_BetweenUsesComputedExpression(t *testing.T) {
	g := filter.NewGroup(filter.And)
	leaf := filter.NewLeaf("days_until_expiry", filter.Between)
	leaf.ValueFrom = 0
	leaf.ValueTo = 30
	g.Children = []filter.Node{leaf}

	sql, args := toSQL(t, g)
	assert.Equal(t,
		"SELECT id FROM inv_batches WHERE ((expires_at::date - CURRENT_DATE) BETWEEN $1 AND $2)",
		sql)
	assert.Equal(t, []any{0, 30}, args)
}

func TestBuildPredicate_SetAndNullOperators(t *testing.T) {
	g := filter.NewGroup(filter.And)
	in := filter.NewLeaf("unit", filter.InList)
	in.Values = []any{"g", "kg", ""}
	null := filter.NewLeaf("location", filter.IsNull)
	g.Children = []filter.Node{in, null}

	sql, args := toSQL(t, g)
	assert.Equal(t,
		"SELECT id FROM inv_batches WHERE (unit IN ($1,$2) AND location IS NULL)",
		sql)
	assert.Equal(t, []any{"g", "kg"}, args)
}

func TestBuildPredicate_DisabledLeavesSkipped(t *testing.T) {
	g := filter.NewGroup(filter.And)
	on := filter.NewLeaf("status", filter.Equal)
	on.Value = "available"
	off := filter.NewLeaf("quantity", filter.Greater)
	off.Value = 100
	off.Enabled = false
	g.Children = []filter.Node{on, off}

	sql, args := toSQL(t, g)
	assert.Equal(t, "SELECT id FROM inv_batches WHERE (status = $1)", sql)
	assert.Equal(t, []any{"available"}, args)
}

func TestBuildPredicate_AllDisabledYieldsNil(t *testing.T) {
	g := filter.NewGroup(filter.And)
	off := filter.NewLeaf("status", filter.Equal)
	off.Enabled = false
	g.Children = []filter.Node{off}

	pred, err := BuildPredicate(g, testCols)
	require.NoError(t, err)
	assert.Nil(t, pred)
}

func TestBuildPredicate_RejectsUnknownColumn(t *testing.T) {
	g := filter.NewGroup(filter.And)
	leaf := filter.NewLeaf("password_hash", filter.Equal)
	leaf.Value = "x"
	g.Children = []filter.Node{leaf}

	_, err := BuildPredicate(g, testCols)
	require.Error(t, err)
}
