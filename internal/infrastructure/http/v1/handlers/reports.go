package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"labstock/internal/core/apperror"
	"labstock/internal/domain/filter"
	"labstock/internal/domain/reports"
)

// ReportsHandler runs ad-hoc queries driven by client-built filter trees.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// reportQueryRequest is the POST body for a report query.
type reportQueryRequest struct {
	Entity  filter.Entity    `json:"entity" binding:"required"`
	Filters *filter.WireNode `json:"filters"`
	OrderBy string           `json:"orderBy"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

// Query handles POST /reports/query - run a filtered query.
func (h *ReportsHandler) Query(c *gin.Context) {
	ctx := c.Request.Context()

	var req reportQueryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	q := reports.Query{
		Entity:  req.Entity,
		OrderBy: req.OrderBy,
		Limit:   req.Limit,
		Offset:  req.Offset,
	}

	if req.Filters != nil {
		g, err := filter.FromWire(*req.Filters)
		if err != nil {
			h.Error(c, err)
			return
		}
		q.Filter = g
	}

	result, err := h.service.Run(ctx, q)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// QueryGET handles GET /reports/query?entity=batches&filters=<encoded tree>.
// Shareable-link variant of Query: the whole filter state lives in the URL.
func (h *ReportsHandler) QueryGET(c *gin.Context) {
	ctx := c.Request.Context()

	entity := filter.Entity(c.Query("entity"))
	if entity == "" {
		h.Error(c, apperror.NewValidation("entity query parameter is required"))
		return
	}

	q := reports.Query{
		Entity:  entity,
		OrderBy: c.Query("orderBy"),
		Limit:   h.ParseIntQuery(c, "limit", 0),
		Offset:  h.ParseIntQuery(c, "offset", 0),
	}

	if raw := c.Query(filter.QueryParam); raw != "" {
		g, err := filter.DecodeQuery(raw)
		if err != nil {
			h.Error(c, err)
			return
		}
		q.Filter = g
	}

	result, err := h.service.Run(ctx, q)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// previewRequest is the POST body for a client-side match preview.
type previewRequest struct {
	Entity  filter.Entity    `json:"entity" binding:"required"`
	Filters *filter.WireNode `json:"filters"`
	Rows    []map[string]any `json:"rows" binding:"required"`
}

// Preview handles POST /reports/preview - count how many of the supplied
// rows the tree matches, without touching the database.
func (h *ReportsHandler) Preview(c *gin.Context) {
	ctx := c.Request.Context()

	var req previewRequest
	if !h.BindJSON(c, &req) {
		return
	}

	preview := reports.PreviewRequest{
		Entity: req.Entity,
		Rows:   req.Rows,
	}

	if req.Filters != nil {
		g, err := filter.FromWire(*req.Filters)
		if err != nil {
			h.Error(c, err)
			return
		}
		preview.Filter = g
	}

	result, err := h.service.Preview(ctx, preview)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
