// Package reports runs ad-hoc queries driven by client-built filter trees.
package reports

import (
	"labstock/internal/domain/filter"
)

// Query is one ad-hoc report request against a filterable entity.
type Query struct {
	// Entity selects the collection to query
	Entity filter.Entity

	// Filter is the advanced filter tree, nil for "everything"
	Filter *filter.Group

	// OrderBy specifies sorting (e.g. "name", "-expires_at")
	OrderBy string

	// Pagination
	Limit  int
	Offset int
}

// Result is the rows a query produced. Rows are schema-shaped maps keyed by
// the wire field names the filter schemas declare.
type Result struct {
	Entity     filter.Entity    `json:"entity"`
	Rows       []map[string]any `json:"rows"`
	TotalCount int64            `json:"totalCount"`
	Limit      int              `json:"limit"`
	Offset     int              `json:"offset"`
}

// PreviewRequest asks how many of the supplied rows a filter tree matches,
// without touching the database.
type PreviewRequest struct {
	Entity filter.Entity
	Filter *filter.Group
	Rows   []map[string]any
}

// PreviewResult reports the dry-run outcome.
type PreviewResult struct {
	Matched int    `json:"matched"`
	Total   int    `json:"total"`
	Expr    string `json:"expr,omitempty"`
}

// Metadata describes one entity's filterable surface for UI builders.
type Metadata struct {
	Entity    filter.Entity     `json:"entity"`
	Fields    filter.Schema     `json:"fields"`
	Operators []filter.Operator `json:"operators"`
}
