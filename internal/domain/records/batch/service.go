package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"labstock/internal/core/id"
	"labstock/internal/core/tx"
	"labstock/internal/domain"
	"labstock/pkg/logger"
)

// Service provides business logic for the Batch record.
type Service struct {
	*domain.RecordService[*Batch]
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new Batch service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewRecordService(domain.RecordServiceConfig[*Batch]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "batch",
	})

	return &Service{
		RecordService: base,
		repo:          repo,
		txManager:     txManager,
	}
}

// Consume withdraws amount from a batch under a row lock. The status flip to
// depleted happens inside the same transaction as the quantity change.
func (s *Service) Consume(ctx context.Context, batchID id.ID, amount decimal.Decimal) (*Batch, error) {
	var consumed *Batch
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		b, err := s.repo.GetForUpdate(ctx, batchID)
		if err != nil {
			return err
		}
		if err := b.Consume(amount, time.Now().UTC()); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, b); err != nil {
			return fmt.Errorf("update batch after consume: %w", err)
		}
		consumed = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return consumed, nil
}

// FindByReagent retrieves batches of one reagent.
func (s *Service) FindByReagent(ctx context.Context, reagentID id.ID, filter domain.ListFilter) (domain.ListResult[*Batch], error) {
	return s.repo.FindByReagent(ctx, reagentID, filter)
}

// FindExpiring retrieves available batches expiring within the given window.
func (s *Service) FindExpiring(ctx context.Context, within time.Duration, filter domain.ListFilter) (domain.ListResult[*Batch], error) {
	cutoff := time.Now().UTC().Add(within)
	return s.repo.FindExpiring(ctx, cutoff, filter)
}

// SweepExpired marks overdue available batches as expired. Intended to run
// periodically from the server's background ticker.
func (s *Service) SweepExpired(ctx context.Context) (int64, error) {
	var n int64
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		n, err = s.repo.MarkExpired(ctx, time.Now().UTC())
		return err
	})
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.Info(ctx, "expired batches swept", "count", n)
	}
	return n, nil
}
