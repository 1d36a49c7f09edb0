package batch

import (
	"context"
	"time"

	"labstock/internal/core/id"
	"labstock/internal/domain"
)

// Repository defines the interface for Batch persistence.
type Repository interface {
	domain.RecordRepository[*Batch]

	// GetForUpdate retrieves a batch with a row lock, for consumption.
	GetForUpdate(ctx context.Context, id id.ID) (*Batch, error)

	// FindByReagent retrieves batches of one reagent.
	FindByReagent(ctx context.Context, reagentID id.ID, filter domain.ListFilter) (domain.ListResult[*Batch], error)

	// FindExpiring retrieves available batches expiring on or before cutoff.
	FindExpiring(ctx context.Context, cutoff time.Time, filter domain.ListFilter) (domain.ListResult[*Batch], error)

	// MarkExpired flips available batches past their expiry date to the
	// expired status and returns the number of rows changed.
	MarkExpired(ctx context.Context, now time.Time) (int64, error)
}
