package reagent

import (
	"context"

	"labstock/internal/domain"
)

// Repository defines the interface for Reagent persistence.
type Repository interface {
	domain.RecordRepository[*Reagent]

	// FindByCAS retrieves a reagent by CAS registry number.
	FindByCAS(ctx context.Context, casNumber string) (*Reagent, error)

	// FindBelowMinStock retrieves reagents whose summed available batch
	// quantity is below their reorder threshold.
	FindBelowMinStock(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Reagent], error)
}
