package user

import (
	"context"

	"labstock/internal/domain"
)

// Repository defines the interface for User persistence.
type Repository interface {
	domain.RecordRepository[*User]

	// FindByEmail retrieves a user by email (lowercased).
	FindByEmail(ctx context.Context, email string) (*User, error)
}
