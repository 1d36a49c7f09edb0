package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"labstock/internal/domain/records/reagent"
	"labstock/internal/infrastructure/http/v1/dto"
)

// ReagentHandler serves the reagent catalogue.
type ReagentHandler struct {
	*RecordHandler[*reagent.Reagent, dto.CreateReagentRequest, dto.UpdateReagentRequest]
	service *reagent.Service
}

// NewReagentHandler creates a new reagent handler.
func NewReagentHandler(base *BaseHandler, service *reagent.Service) *ReagentHandler {
	config := RecordHandlerConfig[*reagent.Reagent, dto.CreateReagentRequest, dto.UpdateReagentRequest]{
		Service:    service.RecordService,
		EntityName: "reagent",

		MapCreateDTO: func(req dto.CreateReagentRequest) (*reagent.Reagent, error) {
			return req.ToEntity(), nil
		},
		MapUpdateDTO: func(req dto.UpdateReagentRequest, existing *reagent.Reagent) *reagent.Reagent {
			req.ApplyTo(existing)
			return existing
		},
	}

	return &ReagentHandler{
		RecordHandler: NewRecordHandler(base, config),
		service:       service,
	}
}

// LowStock handles GET /records/reagents/low-stock - reagents whose total
// available quantity is at or below their reorder threshold.
func (h *ReagentHandler) LowStock(c *gin.Context) {
	ctx := c.Request.Context()

	f, ok := h.ParseListFilter(c)
	if !ok {
		return
	}

	result, err := h.service.FindBelowMinStock(ctx, f)
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
