package reports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labstock/internal/domain/filter"
)

type fakeRepo struct {
	lastQuery Query
	result    *Result
}

func (f *fakeRepo) RunQuery(ctx context.Context, q Query) (*Result, error) {
	f.lastQuery = q
	return f.result, nil
}

func TestRun_ValidatesAndClampsLimit(t *testing.T) {
	repo := &fakeRepo{result: &Result{Entity: filter.EntityBatches}}
	svc := NewService(repo)

	g := filter.NewGroup(filter.And)
	leaf := filter.NewLeaf("status", filter.Equal)
	leaf.Value = "available"
	g.Children = []filter.Node{leaf}

	_, err := svc.Run(context.Background(), Query{
		Entity: filter.EntityBatches,
		Filter: g,
		Limit:  100000,
	})
	require.NoError(t, err)
	assert.Equal(t, maxQueryLimit, repo.lastQuery.Limit)
}

func TestRun_RejectsUnknownEntityAndField(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.Run(context.Background(), Query{Entity: "invoices"})
	require.Error(t, err)

	g := filter.NewGroup(filter.And)
	leaf := filter.NewLeaf("no_such_field", filter.Equal)
	g.Children = []filter.Node{leaf}

	_, err = svc.Run(context.Background(), Query{Entity: filter.EntityBatches, Filter: g})
	require.Error(t, err)
}

func TestPreview_CountsMatches(t *testing.T) {
	svc := NewService(&fakeRepo{})

	p, ok := filter.FindPreset("low_stock")
	require.True(t, ok)
	g, err := filter.FromWire(p.Filter)
	require.NoError(t, err)

	res, err := svc.Preview(context.Background(), PreviewRequest{
		Entity: filter.EntityBatches,
		Filter: g,
		Rows: []map[string]any{
			{"quantity": float64(3), "status": "available"},
			{"quantity": float64(30), "status": "available"},
			{"quantity": float64(3), "status": "depleted"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Matched)
	assert.Equal(t, 3, res.Total)
	assert.NotEmpty(t, res.Expr)
}

func TestPreview_NilFilterMatchesEverything(t *testing.T) {
	svc := NewService(&fakeRepo{})

	res, err := svc.Preview(context.Background(), PreviewRequest{
		Entity: filter.EntityReagents,
		Rows:   []map[string]any{{"name": "a"}, {"name": "b"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Matched)
}

func TestMetadataFor_ListsFieldsAndOperators(t *testing.T) {
	svc := NewService(&fakeRepo{})

	md, err := svc.MetadataFor(filter.EntityEquipment)
	require.NoError(t, err)
	assert.NotEmpty(t, md.Fields)
	assert.Len(t, md.Operators, len(filter.Operators))

	_, err = svc.MetadataFor("invoices")
	assert.Error(t, err)
}
