package dto

import (
	"time"

	"labstock/internal/domain/records/equipment"
)

// --- Request DTOs ---

// CreateEquipmentRequest is the request body for registering an instrument.
type CreateEquipmentRequest struct {
	Code           string         `json:"code"`
	Name           string         `json:"name" binding:"required"`
	Type           equipment.Type `json:"type" binding:"required"`
	SerialNumber   *string        `json:"serialNumber"`
	CalibrationDue *time.Time     `json:"calibrationDue"`
	Location       *string        `json:"location"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateEquipmentRequest) ToEntity() *equipment.Equipment {
	item := equipment.NewEquipment(r.Code, r.Name, r.Type)
	item.SerialNumber = r.SerialNumber
	item.CalibrationDue = r.CalibrationDue
	item.Location = r.Location
	return item
}

// UpdateEquipmentRequest is the request body for updating an instrument.
// Status transitions go through the dedicated status endpoint.
type UpdateEquipmentRequest struct {
	Code           string         `json:"code"`
	Name           string         `json:"name" binding:"required"`
	Type           equipment.Type `json:"type" binding:"required"`
	SerialNumber   *string        `json:"serialNumber"`
	CalibrationDue *time.Time     `json:"calibrationDue"`
	Location       *string        `json:"location"`
	Version        int            `json:"version" binding:"required,min=1"`
}

// ApplyTo copies updatable fields onto an existing entity.
func (r *UpdateEquipmentRequest) ApplyTo(item *equipment.Equipment) {
	if r.Code != "" {
		item.Code = r.Code
	}
	item.Name = r.Name
	item.Type = r.Type
	item.SerialNumber = r.SerialNumber
	item.CalibrationDue = r.CalibrationDue
	item.Location = r.Location
	item.SetVersion(r.Version)
}

// SetEquipmentStatusRequest moves an instrument to a new status.
type SetEquipmentStatusRequest struct {
	Status equipment.Status `json:"status" binding:"required"`
}
