package equipment

import (
	"context"
	"time"

	"labstock/internal/core/apperror"
	"labstock/internal/core/id"
	"labstock/internal/core/tx"
	"labstock/internal/domain"
)

// Service provides business logic for the Equipment record.
type Service struct {
	*domain.RecordService[*Equipment]
	repo Repository
}

// NewService creates a new Equipment service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewRecordService(domain.RecordServiceConfig[*Equipment]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "equipment",
	})

	svc := &Service{
		RecordService: base,
		repo:          repo,
	}

	base.Hooks().On(domain.BeforeCreate, svc.checkSerialUnique)
	base.Hooks().On(domain.BeforeUpdate, svc.checkSerialUnique)

	return svc
}

func (s *Service) checkSerialUnique(ctx context.Context, e *Equipment) error {
	if e.SerialNumber == nil || *e.SerialNumber == "" {
		return nil
	}
	existing, err := s.repo.FindBySerial(ctx, *e.SerialNumber)
	if err != nil {
		return nil
	}
	if existing.ID != e.ID {
		return apperror.NewDuplicate("equipment", "serialNumber", *e.SerialNumber)
	}
	return nil
}

// SetStatus transitions the equipment lifecycle state.
func (s *Service) SetStatus(ctx context.Context, equipmentID id.ID, to Status) (*Equipment, error) {
	e, err := s.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	if err := e.Transition(to); err != nil {
		return nil, err
	}
	if err := s.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// FindCalibrationDue retrieves equipment due for calibration within the window.
func (s *Service) FindCalibrationDue(ctx context.Context, within time.Duration, filter domain.ListFilter) (domain.ListResult[*Equipment], error) {
	cutoff := time.Now().UTC().Add(within)
	return s.repo.FindCalibrationDue(ctx, cutoff, filter)
}
