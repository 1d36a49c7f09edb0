package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_AllRegisteredKeys(t *testing.T) {
	keys := []Key{
		Equal, NotEqual, Greater, GreaterOrEqual, Less, LessOrEqual,
		Like, StartsWith, EndsWith, InList, NotInList,
		IsNull, IsNotNull, Between, NotBetween,
	}
	require.Len(t, Operators, len(keys))
	for _, k := range keys {
		op, ok := Lookup(k)
		assert.True(t, ok, "operator %s must be registered", k)
		assert.Equal(t, k, op.Key)
		assert.NotEmpty(t, op.Label)
		assert.NotEmpty(t, op.ApplicableTypes)
	}

	_, ok := Lookup("frobnicate")
	assert.False(t, ok)
}

func TestOperatorsFor_LegalityOverFullRegistries(t *testing.T) {
	// Every field/operator pair the UI may offer must be internally
	// consistent with the operator's declared applicable types.
	for _, entity := range Entities() {
		schema, ok := SchemaFor(entity)
		require.True(t, ok, "entity %s must have a schema", entity)
		require.NotEmpty(t, schema)

		for _, fs := range schema {
			legal := OperatorsFor(fs.Type)
			require.NotEmpty(t, legal, "%s.%s has no legal operators", entity, fs.Field)
			for _, op := range legal {
				assert.True(t, op.AppliesTo(fs.Type),
					"%s offered for %s.%s (%s) but does not apply", op.Key, entity, fs.Field, fs.Type)
			}

			if fs.Type == TypeEnum {
				assert.NotEmpty(t, fs.Options, "%s.%s is enum without options", entity, fs.Field)
			}
		}
	}
}

func TestOperatorsFor_RegistryOrder(t *testing.T) {
	// Registry order decides the fallback operator on field changes.
	legal := OperatorsFor(TypeNumber)
	require.NotEmpty(t, legal)
	assert.Equal(t, Equal, legal[0].Key)
	assert.Equal(t, Equal, FirstOperatorFor(TypeNumber).Key)
	assert.Equal(t, Equal, FirstOperatorFor(TypeEnum).Key)
}

func TestOperator_ValueShapes(t *testing.T) {
	for _, k := range []Key{IsNull, IsNotNull} {
		op, _ := Lookup(k)
		assert.True(t, op.NoValue, "%s must be no-value", k)
		assert.False(t, op.IsRange)
	}
	for _, k := range []Key{Between, NotBetween} {
		op, _ := Lookup(k)
		assert.True(t, op.IsRange, "%s must be range", k)
		assert.False(t, op.NoValue)
	}
	for _, k := range []Key{Like, StartsWith, EndsWith} {
		op, _ := Lookup(k)
		assert.True(t, op.AppliesTo(TypeString))
		assert.False(t, op.AppliesTo(TypeNumber), "%s must not apply to numbers", k)
	}
}
