package record_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"labstock/internal/core/id"
	"labstock/internal/domain"
	"labstock/internal/domain/records/batch"
	"labstock/internal/infrastructure/storage/postgres"
)

const batchTable = "inv_batches"

// batchFilterCols adds the computed fields the batch filter schema exposes
// on top of the physical columns.
var batchFilterCols = postgres.ColumnMap{
	"days_until_expiry": "(expires_at::date - CURRENT_DATE)",
	"reagent_name":      fmt.Sprintf("(SELECT r.name FROM inv_reagents r WHERE r.id = %s.reagent_id)", batchTable),
}

// BatchRepo implements batch.Repository.
type BatchRepo struct {
	*BaseRecordRepo[*batch.Batch]
}

// NewBatchRepo creates a new batch repository.
func NewBatchRepo(txm *postgres.TxManager) *BatchRepo {
	return &BatchRepo{
		BaseRecordRepo: NewBaseRecordRepo(
			txm,
			batchTable,
			postgres.ExtractDBColumns[batch.Batch](),
			batchFilterCols,
			func() *batch.Batch { return &batch.Batch{} },
		),
	}
}

// FindByReagent retrieves batches of one reagent.
func (r *BatchRepo) FindByReagent(ctx context.Context, reagentID id.ID, filter domain.ListFilter) (domain.ListResult[*batch.Batch], error) {
	result := domain.ListResult[*batch.Batch]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect().
		Where(squirrel.Eq{"reagent_id": reagentID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("received_at DESC")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	var items []*batch.Batch
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return result, fmt.Errorf("find by reagent: %w", err)
	}
	result.Items = items
	result.TotalCount = int64(len(items))

	return result, nil
}

// FindExpiring retrieves available batches expiring on or before cutoff.
func (r *BatchRepo) FindExpiring(ctx context.Context, cutoff time.Time, filter domain.ListFilter) (domain.ListResult[*batch.Batch], error) {
	result := domain.ListResult[*batch.Batch]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect().
		Where(squirrel.Eq{"status": batch.StatusAvailable}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Where(squirrel.NotEq{"expires_at": nil}).
		Where(squirrel.LtOrEq{"expires_at": cutoff}).
		OrderBy("expires_at ASC")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	var items []*batch.Batch
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return result, fmt.Errorf("find expiring: %w", err)
	}
	result.Items = items
	result.TotalCount = int64(len(items))

	return result, nil
}

// MarkExpired flips overdue available batches to the expired status.
func (r *BatchRepo) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	sql, args, err := r.Builder().
		Update(batchTable).
		Set("status", batch.StatusExpired).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", now).
		Where(squirrel.Eq{"status": batch.StatusAvailable}).
		Where(squirrel.NotEq{"expires_at": nil}).
		Where(squirrel.Lt{"expires_at": now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build mark expired: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("mark expired: %w", err)
	}
	return result.RowsAffected(), nil
}
