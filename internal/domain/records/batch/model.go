// Package batch provides the Batch record: a physical lot of a reagent with
// its own quantity, expiry and lifecycle status.
package batch

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"labstock/internal/core/apperror"
	"labstock/internal/core/entity"
	"labstock/internal/core/id"
	"labstock/internal/domain/records/reagent"
)

// Status is the batch lifecycle state.
type Status string

const (
	StatusAvailable  Status = "available"
	StatusReserved   Status = "reserved"
	StatusDepleted   Status = "depleted"
	StatusExpired    Status = "expired"
	StatusQuarantine Status = "quarantine"
)

// Batch represents one received lot of a reagent.
type Batch struct {
	entity.Record

	// ReagentID references the reagent this lot contains
	ReagentID id.ID `db:"reagent_id" json:"reagentId"`

	// LotNumber is the supplier's lot identifier
	LotNumber string `db:"lot_number" json:"lotNumber"`

	// Quantity remaining, in Unit
	Quantity decimal.Decimal `db:"quantity" json:"quantity"`

	// Unit of measure, normally inherited from the reagent
	Unit reagent.Unit `db:"unit" json:"unit"`

	// Status is the lifecycle state
	Status Status `db:"status" json:"status"`

	// ReceivedAt is when the lot arrived
	ReceivedAt time.Time `db:"received_at" json:"receivedAt"`

	// ExpiresAt is the supplier expiry date, nil for non-perishables
	ExpiresAt *time.Time `db:"expires_at" json:"expiresAt,omitempty"`

	// Location is the physical storage location
	Location *string `db:"location" json:"location,omitempty"`
}

// NewBatch creates a new available Batch.
func NewBatch(code string, reagentID id.ID, lotNumber string, quantity decimal.Decimal, unit reagent.Unit) *Batch {
	return &Batch{
		Record:     entity.NewRecord(code, lotNumber),
		ReagentID:  reagentID,
		LotNumber:  lotNumber,
		Quantity:   quantity,
		Unit:       unit,
		Status:     StatusAvailable,
		ReceivedAt: time.Now().UTC(),
	}
}

// Validate implements entity.Validatable.
func (b *Batch) Validate(ctx context.Context) error {
	if err := b.Record.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(b.ReagentID) {
		return apperror.NewValidation("reagent reference is required").
			WithDetail("field", "reagentId")
	}

	if b.LotNumber == "" {
		return apperror.NewValidation("lot number is required").
			WithDetail("field", "lotNumber")
	}

	if b.Quantity.IsNegative() {
		return apperror.NewValidation("quantity cannot be negative").
			WithDetail("field", "quantity")
	}

	if !reagent.ValidUnit(b.Unit) {
		return apperror.NewValidation("invalid unit").
			WithDetail("field", "unit").
			WithDetail("value", string(b.Unit))
	}

	if !validStatus(b.Status) {
		return apperror.NewValidation("invalid batch status").
			WithDetail("field", "status").
			WithDetail("value", string(b.Status))
	}

	if b.ExpiresAt != nil && b.ExpiresAt.Before(b.ReceivedAt) {
		return apperror.NewValidation("expiry date precedes receipt date").
			WithDetail("field", "expiresAt")
	}

	return nil
}

// IsExpired reports whether the batch is past its expiry date at t.
func (b *Batch) IsExpired(t time.Time) bool {
	return b.ExpiresAt != nil && b.ExpiresAt.Before(t)
}

// DaysUntilExpiry returns whole days until expiry at t. Negative values mean
// the batch is already expired; ok is false for non-perishables.
func (b *Batch) DaysUntilExpiry(t time.Time) (int, bool) {
	if b.ExpiresAt == nil {
		return 0, false
	}
	days := int(b.ExpiresAt.Sub(t).Hours() / 24)
	return days, true
}

// Consume withdraws amount from the batch. Depletes the batch when the
// remainder reaches zero.
func (b *Batch) Consume(amount decimal.Decimal, now time.Time) error {
	if b.Status == StatusDepleted {
		return apperror.NewBatchDepleted(b.ID.String())
	}
	if b.Status == StatusExpired || b.IsExpired(now) {
		return apperror.NewBatchExpired(b.ID.String())
	}
	if b.Status != StatusAvailable {
		return apperror.NewBusinessRule("BATCH_NOT_AVAILABLE", "batch is not available for consumption").
			WithDetail("status", string(b.Status))
	}
	if amount.IsNegative() || amount.IsZero() {
		return apperror.NewValidation("consumed amount must be positive").
			WithDetail("field", "amount")
	}
	if amount.GreaterThan(b.Quantity) {
		return apperror.NewBusinessRule("INSUFFICIENT_QUANTITY", "batch holds less than the requested amount").
			WithDetail("available", b.Quantity.String()).
			WithDetail("requested", amount.String())
	}

	b.Quantity = b.Quantity.Sub(amount)
	if b.Quantity.IsZero() {
		b.Status = StatusDepleted
	}
	return nil
}

func validStatus(s Status) bool {
	switch s {
	case StatusAvailable, StatusReserved, StatusDepleted, StatusExpired, StatusQuarantine:
		return true
	}
	return false
}
