package equipment

import (
	"context"
	"time"

	"labstock/internal/domain"
)

// Repository defines the interface for Equipment persistence.
type Repository interface {
	domain.RecordRepository[*Equipment]

	// FindBySerial retrieves equipment by manufacturer serial number.
	FindBySerial(ctx context.Context, serialNumber string) (*Equipment, error)

	// FindCalibrationDue retrieves operational equipment whose calibration
	// deadline falls on or before cutoff.
	FindCalibrationDue(ctx context.Context, cutoff time.Time, filter domain.ListFilter) (domain.ListResult[*Equipment], error)
}
