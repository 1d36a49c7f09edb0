package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"labstock/internal/core/apperror"
	"labstock/internal/core/id"
	"labstock/internal/domain/records/batch"
	"labstock/internal/infrastructure/http/v1/dto"
)

// BatchHandler serves reagent batches, including stock consumption.
type BatchHandler struct {
	*RecordHandler[*batch.Batch, dto.CreateBatchRequest, dto.UpdateBatchRequest]
	service *batch.Service
}

// NewBatchHandler creates a new batch handler.
func NewBatchHandler(base *BaseHandler, service *batch.Service) *BatchHandler {
	config := RecordHandlerConfig[*batch.Batch, dto.CreateBatchRequest, dto.UpdateBatchRequest]{
		Service:    service.RecordService,
		EntityName: "batch",

		MapCreateDTO: func(req dto.CreateBatchRequest) (*batch.Batch, error) {
			return req.ToEntity(), nil
		},
		MapUpdateDTO: func(req dto.UpdateBatchRequest, existing *batch.Batch) *batch.Batch {
			req.ApplyTo(existing)
			return existing
		},
	}

	return &BatchHandler{
		RecordHandler: NewRecordHandler(base, config),
		service:       service,
	}
}

// Consume handles POST /records/batches/:id/consume - withdraw a quantity.
func (h *BatchHandler) Consume(c *gin.Context) {
	ctx := c.Request.Context()

	batchID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.ConsumeBatchRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.Consume(ctx, batchID, req.Amount)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Expiring handles GET /records/batches/expiring?withinDays=N - batches that
// expire inside the given horizon (default 30 days).
func (h *BatchHandler) Expiring(c *gin.Context) {
	ctx := c.Request.Context()

	f, ok := h.ParseListFilter(c)
	if !ok {
		return
	}

	days := h.ParseIntQuery(c, "withinDays", 30)
	if days <= 0 {
		h.Error(c, apperror.NewValidation("withinDays must be positive"))
		return
	}

	result, err := h.service.FindExpiring(ctx, time.Duration(days)*24*time.Hour, f)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      result.Items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// ByReagent handles GET /records/batches/by-reagent/:reagentId.
func (h *BatchHandler) ByReagent(c *gin.Context) {
	ctx := c.Request.Context()

	reagentID, err := id.Parse(c.Param("reagentId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid reagentId format"))
		return
	}

	f, ok := h.ParseListFilter(c)
	if !ok {
		return
	}

	result, err := h.service.FindByReagent(ctx, reagentID, f)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      result.Items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
