// Package reagent provides the Reagent record: a chemical substance the lab
// keeps in stock, independent of the physical batches it arrives in.
package reagent

import (
	"context"

	"github.com/shopspring/decimal"

	"labstock/internal/core/apperror"
	"labstock/internal/core/entity"
)

// Unit is a unit of measure for quantities.
type Unit string

const (
	UnitGram       Unit = "g"
	UnitKilogram   Unit = "kg"
	UnitMilligram  Unit = "mg"
	UnitMilliliter Unit = "ml"
	UnitLiter      Unit = "l"
	UnitMicroliter Unit = "ul"
	UnitPiece      Unit = "pcs"
)

// HazardClass classifies handling requirements.
type HazardClass string

const (
	HazardNone      HazardClass = "none"
	HazardFlammable HazardClass = "flammable"
	HazardCorrosive HazardClass = "corrosive"
	HazardToxic     HazardClass = "toxic"
	HazardOxidizer  HazardClass = "oxidizer"
	HazardCryogenic HazardClass = "cryogenic"
)

// Reagent represents a chemical substance tracked by the lab.
type Reagent struct {
	entity.Record

	// CASNumber is the CAS registry number (e.g. "7647-14-5")
	CASNumber *string `db:"cas_number" json:"casNumber,omitempty"`

	// Unit is the unit quantities of this reagent are measured in
	Unit Unit `db:"unit" json:"unit"`

	// HazardClass drives storage and handling rules
	HazardClass HazardClass `db:"hazard_class" json:"hazardClass"`

	// StorageConditions is free text (e.g. "store at -20C, dark")
	StorageConditions *string `db:"storage_conditions" json:"storageConditions,omitempty"`

	// MinStock is the reorder threshold in Unit
	MinStock decimal.Decimal `db:"min_stock" json:"minStock"`

	// Supplier is the preferred vendor
	Supplier *string `db:"supplier" json:"supplier,omitempty"`

	// Location is the default storage location
	Location *string `db:"location" json:"location,omitempty"`
}

// NewReagent creates a new Reagent with required fields.
func NewReagent(code, name string, unit Unit) *Reagent {
	return &Reagent{
		Record:      entity.NewRecord(code, name),
		Unit:        unit,
		HazardClass: HazardNone,
		MinStock:    decimal.Zero,
	}
}

// Validate implements entity.Validatable.
func (r *Reagent) Validate(ctx context.Context) error {
	if err := r.Record.Validate(ctx); err != nil {
		return err
	}

	if !ValidUnit(r.Unit) {
		return apperror.NewValidation("invalid unit").
			WithDetail("field", "unit").
			WithDetail("value", string(r.Unit))
	}

	if !validHazardClass(r.HazardClass) {
		return apperror.NewValidation("invalid hazard class").
			WithDetail("field", "hazardClass").
			WithDetail("value", string(r.HazardClass))
	}

	if r.MinStock.IsNegative() {
		return apperror.NewValidation("minimum stock cannot be negative").
			WithDetail("field", "minStock")
	}

	return nil
}

// IsHazardous reports whether the reagent needs hazard handling.
func (r *Reagent) IsHazardous() bool {
	return r.HazardClass != HazardNone
}

// ValidUnit reports whether u is a known unit of measure.
func ValidUnit(u Unit) bool {
	switch u {
	case UnitGram, UnitKilogram, UnitMilligram, UnitMilliliter, UnitLiter, UnitMicroliter, UnitPiece:
		return true
	}
	return false
}

func validHazardClass(h HazardClass) bool {
	switch h {
	case HazardNone, HazardFlammable, HazardCorrosive, HazardToxic, HazardOxidizer, HazardCryogenic:
		return true
	}
	return false
}
