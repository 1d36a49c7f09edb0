package dto

import (
	"labstock/internal/domain/records/user"
)

// --- Request DTOs ---

// CreateUserRequest is the request body for registering a lab member.
type CreateUserRequest struct {
	Code     string    `json:"code"`
	Name     string    `json:"name" binding:"required"`
	Email    string    `json:"email" binding:"required,email"`
	Role     user.Role `json:"role" binding:"required"`
	Password string    `json:"password" binding:"required,min=8"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateUserRequest) ToEntity() (*user.User, error) {
	item := user.NewUser(r.Code, r.Name, r.Email, r.Role)
	if err := item.SetPassword(r.Password); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateUserRequest is the request body for updating a lab member.
// Password changes go through the dedicated change-password endpoint.
type UpdateUserRequest struct {
	Code    string    `json:"code"`
	Name    string    `json:"name" binding:"required"`
	Email   string    `json:"email" binding:"required,email"`
	Role    user.Role `json:"role" binding:"required"`
	Version int       `json:"version" binding:"required,min=1"`
}

// ApplyTo copies updatable fields onto an existing entity.
func (r *UpdateUserRequest) ApplyTo(item *user.User) {
	if r.Code != "" {
		item.Code = r.Code
	}
	item.Name = r.Name
	item.Email = r.Email
	item.Role = r.Role
	item.SetVersion(r.Version)
}

// ChangePasswordRequest rotates a user's password.
type ChangePasswordRequest struct {
	Current string `json:"current" binding:"required"`
	New     string `json:"new" binding:"required,min=8"`
}

// SetActiveRequest enables or disables a user account.
type SetActiveRequest struct {
	Active bool `json:"active"`
}
