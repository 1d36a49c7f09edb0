package record_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"labstock/internal/core/apperror"
	"labstock/internal/domain"
	"labstock/internal/domain/records/equipment"
	"labstock/internal/infrastructure/storage/postgres"
)

const equipmentTable = "inv_equipment"

// EquipmentRepo implements equipment.Repository.
type EquipmentRepo struct {
	*BaseRecordRepo[*equipment.Equipment]
}

// NewEquipmentRepo creates a new equipment repository.
func NewEquipmentRepo(txm *postgres.TxManager) *EquipmentRepo {
	return &EquipmentRepo{
		BaseRecordRepo: NewBaseRecordRepo(
			txm,
			equipmentTable,
			postgres.ExtractDBColumns[equipment.Equipment](),
			nil,
			func() *equipment.Equipment { return &equipment.Equipment{} },
		),
	}
}

// FindBySerial retrieves equipment by manufacturer serial number.
func (r *EquipmentRepo) FindBySerial(ctx context.Context, serialNumber string) (*equipment.Equipment, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"serial_number": serialNumber}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	item, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("equipment", serialNumber)
		}
		return nil, err
	}
	return item, nil
}

// FindCalibrationDue retrieves operational equipment due for calibration.
func (r *EquipmentRepo) FindCalibrationDue(ctx context.Context, cutoff time.Time, filter domain.ListFilter) (domain.ListResult[*equipment.Equipment], error) {
	result := domain.ListResult[*equipment.Equipment]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect().
		Where(squirrel.Eq{"status": equipment.StatusOperational}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Where(squirrel.NotEq{"calibration_due": nil}).
		Where(squirrel.LtOrEq{"calibration_due": cutoff}).
		OrderBy("calibration_due ASC")

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

	var items []*equipment.Equipment
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return result, fmt.Errorf("find calibration due: %w", err)
	}
	result.Items = items
	result.TotalCount = int64(len(items))

	return result, nil
}
