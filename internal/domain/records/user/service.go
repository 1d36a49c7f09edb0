package user

import (
	"context"
	"strings"

	"labstock/internal/core/apperror"
	"labstock/internal/core/id"
	"labstock/internal/core/tx"
	"labstock/internal/domain"
)

// Service provides business logic for the User record.
type Service struct {
	*domain.RecordService[*User]
	repo Repository
}

// NewService creates a new User service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewRecordService(domain.RecordServiceConfig[*User]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "user",
	})

	svc := &Service{
		RecordService: base,
		repo:          repo,
	}

	base.Hooks().On(domain.BeforeCreate, svc.normalizeAndCheckEmail)
	base.Hooks().On(domain.BeforeUpdate, svc.normalizeAndCheckEmail)

	return svc
}

func (s *Service) normalizeAndCheckEmail(ctx context.Context, u *User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	existing, err := s.repo.FindByEmail(ctx, u.Email)
	if err != nil {
		return nil
	}
	if existing.ID != u.ID {
		return apperror.NewDuplicate("user", "email", u.Email)
	}
	return nil
}

// FindByEmail retrieves a user by email.
func (s *Service) FindByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// ChangePassword verifies the current password and stores a new hash.
func (s *Service) ChangePassword(ctx context.Context, userID id.ID, current, next string) error {
	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !u.CheckPassword(current) {
		return apperror.NewValidation("current password does not match").
			WithDetail("field", "currentPassword")
	}
	if err := u.SetPassword(next); err != nil {
		return err
	}
	return s.Update(ctx, u)
}

// SetActive activates or deactivates a user.
func (s *Service) SetActive(ctx context.Context, userID id.ID, active bool) error {
	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	u.Active = active
	return s.Update(ctx, u)
}
