package batch

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labstock/internal/core/apperror"
	"labstock/internal/core/id"
	"labstock/internal/domain/records/reagent"
)

func newTestBatch(qty string) *Batch {
	return NewBatch("B-001", id.New(), "LOT-42", decimal.RequireFromString(qty), reagent.UnitGram)
}

func TestBatch_Validate(t *testing.T) {
	ctx := context.Background()

	b := newTestBatch("100")
	require.NoError(t, b.Validate(ctx))

	b = newTestBatch("100")
	b.ReagentID = id.Nil()
	assert.Error(t, b.Validate(ctx))

	b = newTestBatch("-1")
	assert.Error(t, b.Validate(ctx))

	b = newTestBatch("100")
	b.Unit = "furlongs"
	assert.Error(t, b.Validate(ctx))

	b = newTestBatch("100")
	past := b.ReceivedAt.Add(-24 * time.Hour)
	b.ExpiresAt = &past
	assert.Error(t, b.Validate(ctx), "expiry before receipt must fail")
}

func TestBatch_ConsumeDepletesAtZero(t *testing.T) {
	now := time.Now().UTC()
	b := newTestBatch("10")

	require.NoError(t, b.Consume(decimal.RequireFromString("4"), now))
	assert.Equal(t, "6", b.Quantity.String())
	assert.Equal(t, StatusAvailable, b.Status)

	require.NoError(t, b.Consume(decimal.RequireFromString("6"), now))
	assert.True(t, b.Quantity.IsZero())
	assert.Equal(t, StatusDepleted, b.Status)

	err := b.Consume(decimal.RequireFromString("1"), now)
	require.Error(t, err)
	app, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeBatchDepleted, app.Code)
}

func TestBatch_ConsumeRejectsOverdraw(t *testing.T) {
	now := time.Now().UTC()
	b := newTestBatch("5")

	err := b.Consume(decimal.RequireFromString("5.01"), now)
	require.Error(t, err)
	assert.Equal(t, "5", b.Quantity.String(), "failed consume must not change quantity")
}

func TestBatch_ConsumeRejectsExpired(t *testing.T) {
	now := time.Now().UTC()
	b := newTestBatch("5")
	past := now.Add(-time.Hour)
	b.ExpiresAt = &past

	err := b.Consume(decimal.RequireFromString("1"), now)
	require.Error(t, err)
	app, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeBatchExpired, app.Code)
}

func TestBatch_DaysUntilExpiry(t *testing.T) {
	now := time.Now().UTC()
	b := newTestBatch("5")

	_, ok := b.DaysUntilExpiry(now)
	assert.False(t, ok, "non-perishable has no expiry countdown")

	in10 := now.Add(10 * 24 * time.Hour)
	b.ExpiresAt = &in10
	days, ok := b.DaysUntilExpiry(now)
	require.True(t, ok)
	assert.Equal(t, 10, days)
}
