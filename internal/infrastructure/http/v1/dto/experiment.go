package dto

import (
	"labstock/internal/core/id"
	"labstock/internal/domain/records/experiment"
)

// --- Request DTOs ---

// CreateExperimentRequest is the request body for creating an experiment.
type CreateExperimentRequest struct {
	Code   string  `json:"code"`
	Title  string  `json:"title" binding:"required"`
	LeadID string  `json:"leadId" binding:"required,uuid"`
	Notes  *string `json:"notes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateExperimentRequest) ToEntity() *experiment.Experiment {
	item := experiment.NewExperiment(r.Code, r.Title, id.MustParse(r.LeadID))
	item.Notes = r.Notes
	return item
}

// UpdateExperimentRequest is the request body for updating an experiment.
// Status transitions go through the dedicated status endpoint.
type UpdateExperimentRequest struct {
	Code    string  `json:"code"`
	Title   string  `json:"title" binding:"required"`
	LeadID  string  `json:"leadId" binding:"required,uuid"`
	Notes   *string `json:"notes"`
	Version int     `json:"version" binding:"required,min=1"`
}

// ApplyTo copies updatable fields onto an existing entity.
func (r *UpdateExperimentRequest) ApplyTo(item *experiment.Experiment) {
	if r.Code != "" {
		item.Code = r.Code
	}
	item.Title = r.Title
	item.Name = r.Title
	item.LeadID = id.MustParse(r.LeadID)
	item.Notes = r.Notes
	item.SetVersion(r.Version)
}

// SetExperimentStatusRequest moves an experiment to a new lifecycle status.
type SetExperimentStatusRequest struct {
	Status experiment.Status `json:"status" binding:"required"`
}
