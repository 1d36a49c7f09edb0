package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"labstock/internal/core/apperror"
	"labstock/internal/core/id"
	"labstock/internal/domain/records/equipment"
	"labstock/internal/infrastructure/http/v1/dto"
)

// EquipmentHandler serves lab instruments.
type EquipmentHandler struct {
	*RecordHandler[*equipment.Equipment, dto.CreateEquipmentRequest, dto.UpdateEquipmentRequest]
	service *equipment.Service
}

// NewEquipmentHandler creates a new equipment handler.
func NewEquipmentHandler(base *BaseHandler, service *equipment.Service) *EquipmentHandler {
	config := RecordHandlerConfig[*equipment.Equipment, dto.CreateEquipmentRequest, dto.UpdateEquipmentRequest]{
		Service:    service.RecordService,
		EntityName: "equipment",

		MapCreateDTO: func(req dto.CreateEquipmentRequest) (*equipment.Equipment, error) {
			return req.ToEntity(), nil
		},
		MapUpdateDTO: func(req dto.UpdateEquipmentRequest, existing *equipment.Equipment) *equipment.Equipment {
			req.ApplyTo(existing)
			return existing
		},
	}

	return &EquipmentHandler{
		RecordHandler: NewRecordHandler(base, config),
		service:       service,
	}
}

// SetStatus handles POST /records/equipment/:id/status - status transition.
func (h *EquipmentHandler) SetStatus(c *gin.Context) {
	ctx := c.Request.Context()

	equipmentID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.SetEquipmentStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.SetStatus(ctx, equipmentID, req.Status)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// CalibrationDue handles GET /records/equipment/calibration-due?withinDays=N.
func (h *EquipmentHandler) CalibrationDue(c *gin.Context) {
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

	result, err := h.service.FindCalibrationDue(ctx, time.Duration(days)*24*time.Hour, f)
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
