package dto

import (
	"github.com/shopspring/decimal"

	"labstock/internal/domain/records/reagent"
)

// --- Request DTOs ---

// CreateReagentRequest is the request body for registering a reagent.
type CreateReagentRequest struct {
	Code              string              `json:"code"`
	Name              string              `json:"name" binding:"required"`
	CASNumber         *string             `json:"casNumber"`
	Unit              reagent.Unit        `json:"unit" binding:"required"`
	HazardClass       reagent.HazardClass `json:"hazardClass"`
	StorageConditions *string             `json:"storageConditions"`
	MinStock          decimal.Decimal     `json:"minStock"`
	Supplier          *string             `json:"supplier"`
	Location          *string             `json:"location"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateReagentRequest) ToEntity() *reagent.Reagent {
	item := reagent.NewReagent(r.Code, r.Name, r.Unit)
	item.CASNumber = r.CASNumber
	if r.HazardClass != "" {
		item.HazardClass = r.HazardClass
	}
	item.StorageConditions = r.StorageConditions
	item.MinStock = r.MinStock
	item.Supplier = r.Supplier
	item.Location = r.Location
	return item
}

// UpdateReagentRequest is the request body for updating a reagent.
type UpdateReagentRequest struct {
	Code              string              `json:"code"`
	Name              string              `json:"name" binding:"required"`
	CASNumber         *string             `json:"casNumber"`
	Unit              reagent.Unit        `json:"unit" binding:"required"`
	HazardClass       reagent.HazardClass `json:"hazardClass"`
	StorageConditions *string             `json:"storageConditions"`
	MinStock          decimal.Decimal     `json:"minStock"`
	Supplier          *string             `json:"supplier"`
	Location          *string             `json:"location"`
	Version           int                 `json:"version" binding:"required,min=1"`
}

// ApplyTo copies updatable fields onto an existing entity.
func (r *UpdateReagentRequest) ApplyTo(item *reagent.Reagent) {
	if r.Code != "" {
		item.Code = r.Code
	}
	item.Name = r.Name
	item.CASNumber = r.CASNumber
	item.Unit = r.Unit
	if r.HazardClass != "" {
		item.HazardClass = r.HazardClass
	}
	item.StorageConditions = r.StorageConditions
	item.MinStock = r.MinStock
	item.Supplier = r.Supplier
	item.Location = r.Location
	item.SetVersion(r.Version)
}
