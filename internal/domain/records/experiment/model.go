// Package experiment provides the Experiment record: a unit of lab work that
// consumes reagent batches and books equipment.
package experiment

import (
	"context"
	"time"

	"labstock/internal/core/apperror"
	"labstock/internal/core/entity"
	"labstock/internal/core/id"
)

// Status is the experiment lifecycle state.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusAborted   Status = "aborted"
)

// transitions lists the legal status moves.
var transitions = map[Status][]Status{
	StatusDraft:   {StatusRunning, StatusAborted},
	StatusRunning: {StatusCompleted, StatusAborted},
}

// Experiment represents a planned or executed piece of lab work.
type Experiment struct {
	entity.Record

	// Title is the experiment title (Name holds a short label)
	Title string `db:"title" json:"title"`

	// Status is the lifecycle state
	Status Status `db:"status" json:"status"`

	// LeadID references the responsible user
	LeadID id.ID `db:"lead_id" json:"leadId"`

	// StartedAt is set on the draft -> running transition
	StartedAt *time.Time `db:"started_at" json:"startedAt,omitempty"`

	// FinishedAt is set on completion or abort
	FinishedAt *time.Time `db:"finished_at" json:"finishedAt,omitempty"`

	// Notes is free-form commentary
	Notes *string `db:"notes" json:"notes,omitempty"`
}

// NewExperiment creates a new draft Experiment.
func NewExperiment(code, title string, leadID id.ID) *Experiment {
	return &Experiment{
		Record: entity.NewRecord(code, title),
		Title:  title,
		Status: StatusDraft,
		LeadID: leadID,
	}
}

// Validate implements entity.Validatable.
func (e *Experiment) Validate(ctx context.Context) error {
	if err := e.Record.Validate(ctx); err != nil {
		return err
	}

	if e.Title == "" {
		return apperror.NewValidation("title is required").
			WithDetail("field", "title")
	}

	if !validStatus(e.Status) {
		return apperror.NewValidation("invalid experiment status").
			WithDetail("field", "status").
			WithDetail("value", string(e.Status))
	}

	if id.IsNil(e.LeadID) {
		return apperror.NewValidation("lead user is required").
			WithDetail("field", "leadId")
	}

	if e.StartedAt != nil && e.FinishedAt != nil && e.FinishedAt.Before(*e.StartedAt) {
		return apperror.NewValidation("finish precedes start").
			WithDetail("field", "finishedAt")
	}

	return nil
}

// Transition moves the experiment along its lifecycle, stamping the
// started/finished timestamps.
func (e *Experiment) Transition(to Status, now time.Time) error {
	for _, legal := range transitions[e.Status] {
		if legal == to {
			switch to {
			case StatusRunning:
				t := now
				e.StartedAt = &t
			case StatusCompleted, StatusAborted:
				t := now
				e.FinishedAt = &t
			}
			e.Status = to
			return nil
		}
	}
	return apperror.NewBusinessRule("ILLEGAL_TRANSITION", "experiment cannot move to requested status").
		WithDetail("from", string(e.Status)).
		WithDetail("to", string(to))
}

// IsTerminal reports whether the experiment reached a final state.
func (e *Experiment) IsTerminal() bool {
	return e.Status == StatusCompleted || e.Status == StatusAborted
}

func validStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusRunning, StatusCompleted, StatusAborted:
		return true
	}
	return false
}
