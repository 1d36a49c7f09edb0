package entity

import (
	"context"

	"labstock/internal/core/apperror"
)

// Record is the base type for laboratory reference data.
// Examples: Reagents, Batches, Equipment, Experiments, Users.
type Record struct {
	BaseEntity

	// Code is a human-readable identifier (unique within the lab)
	Code string `db:"code" json:"code"`

	// Name is the display name
	Name string `db:"name" json:"name"`
}

// NewRecord creates a new Record with generated ID.
func NewRecord(code, name string) Record {
	return Record{
		BaseEntity: NewBaseEntity(),
		Code:       code,
		Name:       name,
	}
}

// Validate implements Validatable interface.
func (r *Record) Validate(ctx context.Context) error {
	if r.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	// Code can be auto-generated, so it's optional at creation
	// but required at save time

	return nil
}
