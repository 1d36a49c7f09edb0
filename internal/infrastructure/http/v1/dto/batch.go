package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"labstock/internal/core/id"
	"labstock/internal/domain/records/batch"
	"labstock/internal/domain/records/reagent"
)

// --- Request DTOs ---

// CreateBatchRequest is the request body for receiving a batch.
type CreateBatchRequest struct {
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	ReagentID  string          `json:"reagentId" binding:"required,uuid"`
	LotNumber  string          `json:"lotNumber" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity"`
	Unit       reagent.Unit    `json:"unit" binding:"required"`
	ReceivedAt *time.Time      `json:"receivedAt"`
	ExpiresAt  *time.Time      `json:"expiresAt"`
	Location   *string         `json:"location"`
}

// ToEntity converts DTO to domain entity. ReagentID is pre-validated by the
// uuid binding tag, so MustParse cannot panic here.
func (r *CreateBatchRequest) ToEntity() *batch.Batch {
	item := batch.NewBatch(r.Code, id.MustParse(r.ReagentID), r.LotNumber, r.Quantity, r.Unit)
	if r.Name != "" {
		item.Name = r.Name
	}
	if r.ReceivedAt != nil {
		item.ReceivedAt = *r.ReceivedAt
	}
	item.ExpiresAt = r.ExpiresAt
	item.Location = r.Location
	return item
}

// UpdateBatchRequest is the request body for updating a batch.
type UpdateBatchRequest struct {
	Code      string          `json:"code"`
	Name      string          `json:"name" binding:"required"`
	LotNumber string          `json:"lotNumber" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      reagent.Unit    `json:"unit" binding:"required"`
	Status    batch.Status    `json:"status"`
	ExpiresAt *time.Time      `json:"expiresAt"`
	Location  *string         `json:"location"`
	Version   int             `json:"version" binding:"required,min=1"`
}

// ApplyTo copies updatable fields onto an existing entity.
// ReagentID and ReceivedAt are immutable after receipt.
func (r *UpdateBatchRequest) ApplyTo(item *batch.Batch) {
	if r.Code != "" {
		item.Code = r.Code
	}
	item.Name = r.Name
	item.LotNumber = r.LotNumber
	item.Quantity = r.Quantity
	item.Unit = r.Unit
	if r.Status != "" {
		item.Status = r.Status
	}
	item.ExpiresAt = r.ExpiresAt
	item.Location = r.Location
	item.SetVersion(r.Version)
}

// ConsumeBatchRequest withdraws a quantity from a batch.
type ConsumeBatchRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}
