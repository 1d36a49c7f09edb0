package domain

import (
	"context"
	"fmt"

	"labstock/internal/core/apperror"
	"labstock/internal/core/entity"
	"labstock/internal/core/id"
	"labstock/internal/core/tx"
	"labstock/pkg/logger"
)

// RecordService provides business logic shared by all record entities.
type RecordService[T entity.Validatable] struct {
	repo      RecordRepository[T]
	txManager tx.Manager
	hooks     *HookRegistry[T]

	// entityName for error messages
	entityName string
}

// RecordServiceConfig configures the record service.
type RecordServiceConfig[T entity.Validatable] struct {
	Repo       RecordRepository[T]
	TxManager  tx.Manager
	EntityName string
}

// NewRecordService creates a new record service.
func NewRecordService[T entity.Validatable](cfg RecordServiceConfig[T]) *RecordService[T] {
	return &RecordService[T]{
		repo:       cfg.Repo,
		txManager:  cfg.TxManager,
		hooks:      NewHookRegistry[T](),
		entityName: cfg.EntityName,
	}
}

// Hooks returns the hook registry for external registration.
func (s *RecordService[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

func (s *RecordService[T]) normalizeValidationErr(err error) error {
	if err == nil {
		return nil
	}
	// If entity already returns structured AppError, keep it.
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewValidation(err.Error())
}

func (s *RecordService[T]) normalizeGetErr(err error, idOrCode any) error {
	if err == nil {
		return nil
	}
	// Preserve existing AppError, but ensure not-found carries the entity name.
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(s.entityName, idOrCode)
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInternal(err).WithDetail("entity", s.entityName).WithDetail("id", idOrCode)
}

// Create creates a new record.
func (s *RecordService[T]) Create(ctx context.Context, record T) error {
	if err := record.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	if err := s.hooks.Run(ctx, BeforeCreate, record); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, record); err != nil {
			return fmt.Errorf("create %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// After-hooks run outside the transaction; the record is already
	// committed, so a failing hook is logged and not returned.
	if err := s.hooks.Run(ctx, AfterCreate, record); err != nil {
		logger.Warn(ctx, "after-create hook failed", "entity", s.entityName, "error", err)
	}

	return nil
}

// GetByID retrieves a record by ID.
func (s *RecordService[T]) GetByID(ctx context.Context, recordID id.ID) (T, error) {
	record, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		return record, s.normalizeGetErr(err, recordID.String())
	}
	return record, nil
}

// GetByCode retrieves a record by code.
func (s *RecordService[T]) GetByCode(ctx context.Context, code string) (T, error) {
	record, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return record, s.normalizeGetErr(err, code)
	}
	return record, nil
}

// Update updates an existing record.
func (s *RecordService[T]) Update(ctx context.Context, record T) error {
	if err := record.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	if err := s.hooks.Run(ctx, BeforeUpdate, record); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, record); err != nil {
			return fmt.Errorf("update %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.Run(ctx, AfterUpdate, record); err != nil {
		logger.Warn(ctx, "after-update hook failed", "entity", s.entityName, "error", err)
	}

	return nil
}

// Delete performs soft delete.
func (s *RecordService[T]) Delete(ctx context.Context, recordID id.ID) error {
	// Load first so hooks see the record being deleted.
	record, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		return s.normalizeGetErr(err, recordID.String())
	}

	if err := s.hooks.Run(ctx, BeforeDelete, record); err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.SetDeletionMark(ctx, recordID, true); err != nil {
			return fmt.Errorf("delete %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.Run(ctx, AfterDelete, record); err != nil {
		logger.Warn(ctx, "after-delete hook failed", "entity", s.entityName, "error", err)
	}

	return nil
}

// SetDeletionMark sets or clears the soft-delete mark.
func (s *RecordService[T]) SetDeletionMark(ctx context.Context, recordID id.ID, marked bool) error {
	return s.repo.SetDeletionMark(ctx, recordID, marked)
}

// List retrieves records with filtering.
func (s *RecordService[T]) List(ctx context.Context, filter ListFilter) (ListResult[T], error) {
	return s.repo.List(ctx, filter)
}

// Exists checks if a record exists.
func (s *RecordService[T]) Exists(ctx context.Context, recordID id.ID) (bool, error) {
	return s.repo.Exists(ctx, recordID)
}
