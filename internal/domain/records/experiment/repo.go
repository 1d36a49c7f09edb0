package experiment

import (
	"context"

	"labstock/internal/core/id"
	"labstock/internal/domain"
)

// Repository defines the interface for Experiment persistence.
type Repository interface {
	domain.RecordRepository[*Experiment]

	// FindByLead retrieves experiments led by one user.
	FindByLead(ctx context.Context, leadID id.ID, filter domain.ListFilter) (domain.ListResult[*Experiment], error)
}
