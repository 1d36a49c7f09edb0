package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"labstock/internal/core/apperror"
	"labstock/internal/core/id"
	"labstock/internal/domain/records/experiment"
	"labstock/internal/infrastructure/http/v1/dto"
)

// ExperimentHandler serves experiments and their lifecycle transitions.
type ExperimentHandler struct {
	*RecordHandler[*experiment.Experiment, dto.CreateExperimentRequest, dto.UpdateExperimentRequest]
	service *experiment.Service
}

// NewExperimentHandler creates a new experiment handler.
func NewExperimentHandler(base *BaseHandler, service *experiment.Service) *ExperimentHandler {
	config := RecordHandlerConfig[*experiment.Experiment, dto.CreateExperimentRequest, dto.UpdateExperimentRequest]{
		Service:    service.RecordService,
		EntityName: "experiment",

		MapCreateDTO: func(req dto.CreateExperimentRequest) (*experiment.Experiment, error) {
			return req.ToEntity(), nil
		},
		MapUpdateDTO: func(req dto.UpdateExperimentRequest, existing *experiment.Experiment) *experiment.Experiment {
			req.ApplyTo(existing)
			return existing
		},
	}

	return &ExperimentHandler{
		RecordHandler: NewRecordHandler(base, config),
		service:       service,
	}
}

// SetStatus handles POST /records/experiments/:id/status - lifecycle move.
func (h *ExperimentHandler) SetStatus(c *gin.Context) {
	ctx := c.Request.Context()

	experimentID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.SetExperimentStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.SetStatus(ctx, experimentID, req.Status)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// ByLead handles GET /records/experiments/by-lead/:leadId.
func (h *ExperimentHandler) ByLead(c *gin.Context) {
	ctx := c.Request.Context()

	leadID, err := id.Parse(c.Param("leadId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid leadId format"))
		return
	}

	f, ok := h.ParseListFilter(c)
	if !ok {
		return
	}

	result, err := h.service.FindByLead(ctx, leadID, f)
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
