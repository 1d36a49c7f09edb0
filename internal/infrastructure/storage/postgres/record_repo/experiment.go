package record_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"labstock/internal/core/id"
	"labstock/internal/domain"
	"labstock/internal/domain/records/experiment"
	"labstock/internal/infrastructure/storage/postgres"
)

const experimentTable = "inv_experiments"

// experimentFilterCols exposes the lead's display name to filter trees.
var experimentFilterCols = postgres.ColumnMap{
	"lead": fmt.Sprintf("(SELECT u.name FROM inv_users u WHERE u.id = %s.lead_id)", experimentTable),
}

// ExperimentRepo implements experiment.Repository.
type ExperimentRepo struct {
	*BaseRecordRepo[*experiment.Experiment]
}

// NewExperimentRepo creates a new experiment repository.
func NewExperimentRepo(txm *postgres.TxManager) *ExperimentRepo {
	return &ExperimentRepo{
		BaseRecordRepo: NewBaseRecordRepo(
			txm,
			experimentTable,
			postgres.ExtractDBColumns[experiment.Experiment](),
			experimentFilterCols,
			func() *experiment.Experiment { return &experiment.Experiment{} },
		),
	}
}

// FindByLead retrieves experiments led by one user.
func (r *ExperimentRepo) FindByLead(ctx context.Context, leadID id.ID, filter domain.ListFilter) (domain.ListResult[*experiment.Experiment], error) {
	result := domain.ListResult[*experiment.Experiment]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect().
		Where(squirrel.Eq{"lead_id": leadID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("created_at DESC")

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

	var items []*experiment.Experiment
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return result, fmt.Errorf("find by lead: %w", err)
	}
	result.Items = items
	result.TotalCount = int64(len(items))

	return result, nil
}
