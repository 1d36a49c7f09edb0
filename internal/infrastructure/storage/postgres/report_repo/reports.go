// Package report_repo executes ad-hoc report queries built from filter trees.
package report_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"labstock/internal/core/apperror"
	"labstock/internal/domain/filter"
	"labstock/internal/domain/reports"
	"labstock/internal/infrastructure/storage/postgres"
)

// entitySpec binds one filterable entity to its table and the SQL expression
// behind each wire field.
type entitySpec struct {
	table        string
	cols         postgres.ColumnMap
	defaultOrder string
}

var specs = map[filter.Entity]entitySpec{
	filter.EntityReagents: {
		table: "inv_reagents",
		cols: postgres.IdentityColumns([]string{
			"code", "name", "cas_number", "unit", "hazard_class",
			"min_stock", "supplier", "location", "created_at",
		}),
		defaultOrder: "name",
	},
	filter.EntityBatches: {
		table: "inv_batches",
		cols: postgres.IdentityColumns([]string{
			"lot_number", "quantity", "unit", "status",
			"received_at", "expires_at", "location",
		}).With(postgres.ColumnMap{
			"reagent_name":      "(SELECT r.name FROM inv_reagents r WHERE r.id = inv_batches.reagent_id)",
			"days_until_expiry": "(expires_at::date - CURRENT_DATE)",
		}),
		defaultOrder: "received_at",
	},
	filter.EntityEquipment: {
		table: "inv_equipment",
		cols: postgres.IdentityColumns([]string{
			"code", "name", "type", "status",
			"serial_number", "calibration_due", "location",
		}),
		defaultOrder: "name",
	},
	filter.EntityExperiments: {
		table: "inv_experiments",
		cols: postgres.IdentityColumns([]string{
			"code", "title", "status", "started_at", "finished_at",
		}).With(postgres.ColumnMap{
			"lead": "(SELECT u.name FROM inv_users u WHERE u.id = inv_experiments.lead_id)",
		}),
		defaultOrder: "code",
	},
}

// ReportRepo implements reports.Repository on PostgreSQL.
type ReportRepo struct {
	txm *postgres.TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txm: txm}
}

// RunQuery executes a validated report query inside a read-only transaction
// and returns rows keyed by the wire field names.
func (r *ReportRepo) RunQuery(ctx context.Context, q reports.Query) (*reports.Result, error) {
	spec, ok := specs[q.Entity]
	if !ok {
		return nil, apperror.NewValidation("unknown report entity").
			WithDetail("entity", string(q.Entity))
	}

	schema, _ := filter.SchemaFor(q.Entity)
	fields := schema.Fields()

	selects := make([]string, len(fields))
	for i, f := range fields {
		expr, ok := spec.cols[f]
		if !ok {
			return nil, fmt.Errorf("field %s has no column mapping for %s", f, q.Entity)
		}
		if expr == f {
			selects[i] = expr
		} else {
			selects[i] = expr + " AS " + f
		}
	}

	builder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select(selects...).
		From(spec.table).
		Where(squirrel.Eq{"deletion_mark": false})

	if q.Filter != nil {
		pred, err := postgres.BuildPredicate(q.Filter, spec.cols)
		if err != nil {
			return nil, err
		}
		if pred != nil {
			builder = builder.Where(pred)
		}
	}

	orderBy, err := parseOrderBy(q.OrderBy, spec)
	if err != nil {
		return nil, err
	}

	result := &reports.Result{
		Entity: q.Entity,
		Rows:   []map[string]any{},
		Limit:  q.Limit,
		Offset: q.Offset,
	}

	err = r.txm.ReadOnly(ctx, func(ctx context.Context) error {
		countSQL, countArgs, err := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
			Select("COUNT(*)").
			FromSelect(builder, "sub").
			ToSql()
		if err != nil {
			return fmt.Errorf("build count query: %w", err)
		}

		querier := r.txm.GetQuerier(ctx)
		if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
			return fmt.Errorf("count: %w", err)
		}

		paged := builder.OrderBy(orderBy)
		if q.Limit > 0 {
			paged = paged.Limit(uint64(q.Limit))
		}
		if q.Offset > 0 {
			paged = paged.Offset(uint64(q.Offset))
		}

		sql, args, err := paged.ToSql()
		if err != nil {
			return fmt.Errorf("build query: %w", err)
		}

		rows, err := querier.Query(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("query: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			values, err := rows.Values()
			if err != nil {
				return fmt.Errorf("read row: %w", err)
			}
			row := make(map[string]any, len(fields))
			for i, f := range fields {
				row[f] = values[i]
			}
			result.Rows = append(result.Rows, row)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func parseOrderBy(orderBy string, spec entitySpec) (string, error) {
	if orderBy == "" {
		orderBy = spec.defaultOrder
	}

	direction := "ASC"
	field := orderBy
	if strings.HasPrefix(orderBy, "-") {
		direction = "DESC"
		field = strings.TrimPrefix(orderBy, "-")
	}

	expr, ok := spec.cols[field]
	if !ok {
		return "", apperror.NewValidation("invalid orderBy").
			WithDetail("orderBy", orderBy)
	}
	return expr + " " + direction, nil
}
