package reports

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"labstock/internal/core/apperror"
	"labstock/internal/domain/filter"
	"labstock/pkg/logger"
)

const maxQueryLimit = 1000

// Service validates and runs report queries.
type Service struct {
	repo   Repository
	tracer trace.Tracer
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{
		repo:   repo,
		tracer: otel.Tracer("labstock/reports"),
	}
}

// Run validates the query against the entity's field schema and executes it.
func (s *Service) Run(ctx context.Context, q Query) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "reports.Run",
		trace.WithAttributes(attribute.String("report.entity", string(q.Entity))))
	defer span.End()

	schema, ok := filter.SchemaFor(q.Entity)
	if !ok {
		return nil, apperror.NewValidation("unknown report entity").
			WithDetail("entity", string(q.Entity))
	}

	if q.Filter != nil {
		if err := q.Filter.ValidateAgainst(schema); err != nil {
			return nil, err
		}
	}

	if q.Limit <= 0 {
		q.Limit = 100
	}
	if q.Limit > maxQueryLimit {
		q.Limit = maxQueryLimit
	}

	result, err := s.repo.RunQuery(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("run report query: %w", err)
	}

	logger.Debug(ctx, "report query executed",
		"entity", q.Entity, "rows", len(result.Rows), "total", result.TotalCount)
	return result, nil
}

// Preview compiles the filter to an in-memory matcher and counts how many of
// the supplied rows it accepts. No database round-trip.
func (s *Service) Preview(ctx context.Context, req PreviewRequest) (*PreviewResult, error) {
	_, span := s.tracer.Start(ctx, "reports.Preview",
		trace.WithAttributes(attribute.String("report.entity", string(req.Entity))))
	defer span.End()

	schema, ok := filter.SchemaFor(req.Entity)
	if !ok {
		return nil, apperror.NewValidation("unknown report entity").
			WithDetail("entity", string(req.Entity))
	}

	if req.Filter == nil {
		return &PreviewResult{Matched: len(req.Rows), Total: len(req.Rows)}, nil
	}
	if err := req.Filter.ValidateAgainst(schema); err != nil {
		return nil, err
	}

	m, err := filter.CompileMatcher(req.Filter)
	if err != nil {
		return nil, err
	}

	matched, err := m.CountMatches(req.Rows)
	if err != nil {
		return nil, apperror.NewValidation("filter cannot be evaluated against supplied rows").
			WithCause(err)
	}

	return &PreviewResult{
		Matched: matched,
		Total:   len(req.Rows),
		Expr:    m.Expr(),
	}, nil
}

// MetadataFor returns the filterable surface of one entity.
func (s *Service) MetadataFor(entity filter.Entity) (*Metadata, error) {
	schema, ok := filter.SchemaFor(entity)
	if !ok {
		return nil, apperror.NewValidation("unknown report entity").
			WithDetail("entity", string(entity))
	}
	return &Metadata{
		Entity:    entity,
		Fields:    schema,
		Operators: filter.Operators,
	}, nil
}

// PresetsFor returns the preset library of one entity.
func (s *Service) PresetsFor(entity filter.Entity) ([]filter.Preset, error) {
	if _, ok := filter.SchemaFor(entity); !ok {
		return nil, apperror.NewValidation("unknown report entity").
			WithDetail("entity", string(entity))
	}
	return filter.PresetsFor(entity), nil
}
