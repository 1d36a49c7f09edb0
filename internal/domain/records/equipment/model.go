// Package equipment provides the Equipment record: instruments and devices
// with a maintenance lifecycle and calibration schedule.
package equipment

import (
	"context"
	"time"

	"labstock/internal/core/apperror"
	"labstock/internal/core/entity"
)

// Type categorizes an instrument.
type Type string

const (
	TypeCentrifuge Type = "centrifuge"
	TypeIncubator  Type = "incubator"
	TypeMicroscope Type = "microscope"
	TypeBalance    Type = "balance"
	TypePHMeter    Type = "ph_meter"
	TypeFreezer    Type = "freezer"
	TypeOther      Type = "other"
)

// Status is the equipment lifecycle state.
type Status string

const (
	StatusOperational Status = "operational"
	StatusMaintenance Status = "maintenance"
	StatusRetired     Status = "retired"
)

// Equipment represents a lab instrument.
type Equipment struct {
	entity.Record

	// Type categorizes the instrument
	Type Type `db:"type" json:"type"`

	// Status is the lifecycle state
	Status Status `db:"status" json:"status"`

	// SerialNumber is the manufacturer serial
	SerialNumber *string `db:"serial_number" json:"serialNumber,omitempty"`

	// CalibrationDue is the next calibration deadline
	CalibrationDue *time.Time `db:"calibration_due" json:"calibrationDue,omitempty"`

	// Location is where the instrument lives
	Location *string `db:"location" json:"location,omitempty"`
}

// NewEquipment creates a new operational Equipment record.
func NewEquipment(code, name string, eqType Type) *Equipment {
	return &Equipment{
		Record: entity.NewRecord(code, name),
		Type:   eqType,
		Status: StatusOperational,
	}
}

// Validate implements entity.Validatable.
func (e *Equipment) Validate(ctx context.Context) error {
	if err := e.Record.Validate(ctx); err != nil {
		return err
	}

	if !validType(e.Type) {
		return apperror.NewValidation("invalid equipment type").
			WithDetail("field", "type").
			WithDetail("value", string(e.Type))
	}

	if !validStatus(e.Status) {
		return apperror.NewValidation("invalid equipment status").
			WithDetail("field", "status").
			WithDetail("value", string(e.Status))
	}

	return nil
}

// CalibrationOverdue reports whether calibration is past due at t.
func (e *Equipment) CalibrationOverdue(t time.Time) bool {
	return e.CalibrationDue != nil && e.CalibrationDue.Before(t)
}

// Transition moves the equipment to a new status. Retired is terminal.
func (e *Equipment) Transition(to Status) error {
	if !validStatus(to) {
		return apperror.NewValidation("invalid equipment status").
			WithDetail("value", string(to))
	}
	if e.Status == StatusRetired {
		return apperror.NewBusinessRule("EQUIPMENT_RETIRED", "retired equipment cannot change status").
			WithDetail("id", e.ID.String())
	}
	e.Status = to
	return nil
}

func validType(t Type) bool {
	switch t {
	case TypeCentrifuge, TypeIncubator, TypeMicroscope, TypeBalance, TypePHMeter, TypeFreezer, TypeOther:
		return true
	}
	return false
}

func validStatus(s Status) bool {
	switch s {
	case StatusOperational, StatusMaintenance, StatusRetired:
		return true
	}
	return false
}
