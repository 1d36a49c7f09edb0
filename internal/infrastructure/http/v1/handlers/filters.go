package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"labstock/internal/core/apperror"
	"labstock/internal/domain/filter"
	"labstock/internal/domain/reports"
)

// FiltersHandler exposes the filter-builder support surface: field schemas,
// operator metadata, presets and server-side validation of client trees.
type FiltersHandler struct {
	*BaseHandler
	reports *reports.Service
}

// NewFiltersHandler creates a new filters handler.
func NewFiltersHandler(base *BaseHandler, reportsService *reports.Service) *FiltersHandler {
	return &FiltersHandler{
		BaseHandler: base,
		reports:     reportsService,
	}
}

// Metadata handles GET /filters/metadata?entity=batches - the fields and
// operators a filter builder UI needs for one entity.
func (h *FiltersHandler) Metadata(c *gin.Context) {
	entity := filter.Entity(c.Query("entity"))
	if entity == "" {
		h.Error(c, apperror.NewValidation("entity query parameter is required"))
		return
	}

	meta, err := h.reports.MetadataFor(entity)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, meta)
}

// Entities handles GET /filters/entities - the filterable collections.
func (h *FiltersHandler) Entities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"entities": filter.Entities()})
}

// Presets handles GET /filters/presets?entity=batches.
func (h *FiltersHandler) Presets(c *gin.Context) {
	entity := filter.Entity(c.Query("entity"))
	if entity == "" {
		h.Error(c, apperror.NewValidation("entity query parameter is required"))
		return
	}

	presets, err := h.reports.PresetsFor(entity)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"presets": presets})
}

// validateFilterRequest carries a wire tree plus the entity to check against.
type validateFilterRequest struct {
	Entity  filter.Entity    `json:"entity" binding:"required"`
	Filters *filter.WireNode `json:"filters" binding:"required"`
}

// Validate handles POST /filters/validate - decode a client-built tree and
// check it against the entity schema without running anything.
func (h *FiltersHandler) Validate(c *gin.Context) {
	var req validateFilterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	schema, ok := filter.SchemaFor(req.Entity)
	if !ok {
		h.Error(c, apperror.NewValidation("unknown entity").
			WithDetail("entity", string(req.Entity)))
		return
	}

	g, err := filter.FromWire(*req.Filters)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := g.ValidateAgainst(schema); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":       true,
		"activeCount": g.ActiveCount(),
	})
}
