package handlers

import (
	"github.com/gin-gonic/gin"

	"labstock/internal/core/apperror"
	"labstock/internal/core/id"
	"labstock/internal/domain/records/user"
	"labstock/internal/infrastructure/http/v1/dto"
)

// UserHandler serves lab member accounts.
type UserHandler struct {
	*RecordHandler[*user.User, dto.CreateUserRequest, dto.UpdateUserRequest]
	service *user.Service
}

// NewUserHandler creates a new user handler.
func NewUserHandler(base *BaseHandler, service *user.Service) *UserHandler {
	config := RecordHandlerConfig[*user.User, dto.CreateUserRequest, dto.UpdateUserRequest]{
		Service:    service.RecordService,
		EntityName: "user",

		MapCreateDTO: func(req dto.CreateUserRequest) (*user.User, error) {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateUserRequest, existing *user.User) *user.User {
			req.ApplyTo(existing)
			return existing
		},
	}

	return &UserHandler{
		RecordHandler: NewRecordHandler(base, config),
		service:       service,
	}
}

// ChangePassword handles POST /records/users/:id/change-password.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	ctx := c.Request.Context()

	userID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.ChangePassword(ctx, userID, req.Current, req.New); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "password changed")
}

// SetActive handles POST /records/users/:id/active.
func (h *UserHandler) SetActive(c *gin.Context) {
	ctx := c.Request.Context()

	userID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.SetActiveRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.SetActive(ctx, userID, req.Active); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "active flag updated")
}
