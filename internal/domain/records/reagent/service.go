package reagent

import (
	"context"

	"labstock/internal/core/apperror"
	"labstock/internal/core/id"
	"labstock/internal/core/tx"
	"labstock/internal/domain"
)

// Service provides business logic for the Reagent record.
// Composition with domain.RecordService covers common CRUD.
type Service struct {
	*domain.RecordService[*Reagent]
	repo Repository
}

// NewService creates a new Reagent service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewRecordService(domain.RecordServiceConfig[*Reagent]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "reagent",
	})

	svc := &Service{
		RecordService: base,
		repo:          repo,
	}

	base.Hooks().On(domain.BeforeCreate, svc.checkUnique)
	base.Hooks().On(domain.BeforeUpdate, svc.checkUnique)

	return svc
}

// checkUnique rejects duplicate codes and CAS numbers.
func (s *Service) checkUnique(ctx context.Context, r *Reagent) error {
	if r.Code != "" {
		if taken, _ := s.codeTaken(ctx, r.Code, r.ID); taken {
			return apperror.NewDuplicate("reagent", "code", r.Code)
		}
	}

	if r.CASNumber != nil && *r.CASNumber != "" {
		if taken, _ := s.casTaken(ctx, *r.CASNumber, r.ID); taken {
			return apperror.NewDuplicate("reagent", "casNumber", *r.CASNumber)
		}
	}

	return nil
}

// FindByCAS retrieves a reagent by CAS registry number.
func (s *Service) FindByCAS(ctx context.Context, casNumber string) (*Reagent, error) {
	return s.repo.FindByCAS(ctx, casNumber)
}

// FindBelowMinStock retrieves reagents below their reorder threshold.
func (s *Service) FindBelowMinStock(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Reagent], error) {
	return s.repo.FindBelowMinStock(ctx, filter)
}

func (s *Service) codeTaken(ctx context.Context, code string, excludeID id.ID) (bool, error) {
	existing, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return false, nil
	}
	return existing.ID != excludeID, nil
}

func (s *Service) casTaken(ctx context.Context, casNumber string, excludeID id.ID) (bool, error) {
	existing, err := s.repo.FindByCAS(ctx, casNumber)
	if err != nil {
		return false, nil
	}
	return existing.ID != excludeID, nil
}
