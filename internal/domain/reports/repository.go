package reports

import (
	"context"
)

// Repository executes report queries against storage.
type Repository interface {
	// RunQuery executes a validated query and returns schema-shaped rows.
	RunQuery(ctx context.Context, q Query) (*Result, error)
}
