package experiment

import (
	"context"
	"time"

	"labstock/internal/core/id"
	"labstock/internal/core/tx"
	"labstock/internal/domain"
)

// Service provides business logic for the Experiment record.
type Service struct {
	*domain.RecordService[*Experiment]
	repo Repository
}

// NewService creates a new Experiment service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewRecordService(domain.RecordServiceConfig[*Experiment]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "experiment",
	})

	return &Service{
		RecordService: base,
		repo:          repo,
	}
}

// SetStatus transitions the experiment lifecycle state.
func (s *Service) SetStatus(ctx context.Context, experimentID id.ID, to Status) (*Experiment, error) {
	e, err := s.GetByID(ctx, experimentID)
	if err != nil {
		return nil, err
	}
	if err := e.Transition(to, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// FindByLead retrieves experiments led by one user.
func (s *Service) FindByLead(ctx context.Context, leadID id.ID, filter domain.ListFilter) (domain.ListResult[*Experiment], error) {
	return s.repo.FindByLead(ctx, leadID, filter)
}
