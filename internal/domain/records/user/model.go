// Package user provides the User record: lab personnel referenced by
// experiments and the audit trail.
package user

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"labstock/internal/core/apperror"
	"labstock/internal/core/entity"
)

// Role controls what a user may do.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleTechnician Role = "technician"
	RoleViewer     Role = "viewer"
)

// User represents a member of the lab.
type User struct {
	entity.Record

	// Email is the login identity, unique
	Email string `db:"email" json:"email"`

	// Role controls permissions
	Role Role `db:"role" json:"role"`

	// Active users may sign in; deactivation keeps history intact
	Active bool `db:"active" json:"active"`

	// PasswordHash is the bcrypt hash, never serialized
	PasswordHash string `db:"password_hash" json:"-"`
}

// NewUser creates a new active User. Name is the full display name.
func NewUser(code, name, email string, role Role) *User {
	return &User{
		Record: entity.NewRecord(code, name),
		Email:  strings.ToLower(strings.TrimSpace(email)),
		Role:   role,
		Active: true,
	}
}

// Validate implements entity.Validatable.
func (u *User) Validate(ctx context.Context) error {
	if err := u.Record.Validate(ctx); err != nil {
		return err
	}

	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return apperror.NewValidation("valid email is required").
			WithDetail("field", "email")
	}

	if !validRole(u.Role) {
		return apperror.NewValidation("invalid role").
			WithDetail("field", "role").
			WithDetail("value", string(u.Role))
	}

	return nil
}

// SetPassword hashes and stores a new password.
func (u *User) SetPassword(plain string) error {
	if len(plain) < 8 {
		return apperror.NewValidation("password must be at least 8 characters").
			WithDetail("field", "password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return apperror.NewInternal(err)
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword compares a plaintext password against the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func validRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleTechnician, RoleViewer:
		return true
	}
	return false
}
