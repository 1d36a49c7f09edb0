package record_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"labstock/internal/core/apperror"
	"labstock/internal/domain"
	"labstock/internal/domain/records/reagent"
	"labstock/internal/infrastructure/storage/postgres"
)

const reagentTable = "inv_reagents"

// ReagentRepo implements reagent.Repository.
type ReagentRepo struct {
	*BaseRecordRepo[*reagent.Reagent]
}

// NewReagentRepo creates a new reagent repository.
func NewReagentRepo(txm *postgres.TxManager) *ReagentRepo {
	return &ReagentRepo{
		BaseRecordRepo: NewBaseRecordRepo(
			txm,
			reagentTable,
			postgres.ExtractDBColumns[reagent.Reagent](),
			nil,
			func() *reagent.Reagent { return &reagent.Reagent{} },
		),
	}
}

// FindByCAS retrieves a reagent by CAS registry number.
func (r *ReagentRepo) FindByCAS(ctx context.Context, casNumber string) (*reagent.Reagent, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"cas_number": casNumber}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	item, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("reagent", casNumber)
		}
		return nil, err
	}
	return item, nil
}

// FindBelowMinStock retrieves reagents whose summed available batch quantity
// is below their reorder threshold.
func (r *ReagentRepo) FindBelowMinStock(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*reagent.Reagent], error) {
	result := domain.ListResult[*reagent.Reagent]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	stockExpr := fmt.Sprintf(
		"COALESCE((SELECT SUM(b.quantity) FROM %s b WHERE b.reagent_id = %s.id AND b.status = 'available' AND b.deletion_mark = false), 0)",
		batchTable, reagentTable)

	q := r.baseSelect().
		Where(squirrel.Eq{"deletion_mark": false}).
		Where(squirrel.Expr(stockExpr + " < min_stock")).
		OrderBy("name ASC")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build low stock query: %w", err)
	}

	var items []*reagent.Reagent
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return result, fmt.Errorf("find below min stock: %w", err)
	}
	result.Items = items
	result.TotalCount = int64(len(items))

	return result, nil
}
