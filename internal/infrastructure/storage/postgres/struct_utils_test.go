package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labstock/internal/domain/records/reagent"
)

func TestExtractDBColumns_DescendsEmbedded(t *testing.T) {
	cols := ExtractDBColumns[reagent.Reagent]()
	require.NotEmpty(t, cols)

	// Embedded BaseEntity/Record fields come first
	assert.Contains(t, cols, "id")
	assert.Contains(t, cols, "deletion_mark")
	assert.Contains(t, cols, "version")
	assert.Contains(t, cols, "code")
	assert.Contains(t, cols, "name")

	// Own fields
	assert.Contains(t, cols, "cas_number")
	assert.Contains(t, cols, "min_stock")
}

func TestStructToMap_UsesDBTags(t *testing.T) {
	r := reagent.NewReagent("RG-001", "Sodium chloride", reagent.UnitGram)
	m := StructToMap(r)

	assert.Equal(t, r.ID, m["id"])
	assert.Equal(t, "RG-001", m["code"])
	assert.Equal(t, "Sodium chloride", m["name"])
	assert.Equal(t, r.Unit, m["unit"])

	// Every extracted column must be present in the map
	for _, col := range ExtractDBColumns[reagent.Reagent]() {
		_, ok := m[col]
		assert.True(t, ok, "column %s missing from map", col)
	}
}
