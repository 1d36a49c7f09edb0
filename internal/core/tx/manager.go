// Package tx defines transaction management contracts. Domain services
// depend on these interfaces; the pgx-backed implementation lives in
// infrastructure/storage/postgres.
package tx

import (
	"context"
)

// Manager runs a function inside a database transaction.
type Manager interface {
	// RunInTransaction executes fn within a transaction. If fn returns an
	// error the transaction is rolled back, otherwise it is committed.
	// Nested calls reuse the transaction already stored in ctx.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager extends Manager with read-only transactions for report
// queries that must see a consistent snapshot without taking locks.
type ReadOnlyManager interface {
	Manager

	// ReadOnly executes fn in a read-only transaction. Writes fail.
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
