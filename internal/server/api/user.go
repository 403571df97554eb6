package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/fulexo/platform/internal/objects"
	"github.com/fulexo/platform/internal/server/biz"
)

type UserHandlersParams struct {
	fx.In

	UserService *biz.UserService
}

func NewUserHandlers(params UserHandlersParams) *UserHandlers {
	return &UserHandlers{UserService: params.UserService}
}

// UserHandlers serves the admin-only user management endpoints. Users are
// always created inside the caller's tenant.
type UserHandlers struct {
	UserService *biz.UserService
}

func (h *UserHandlers) Create(c *gin.Context) {
	var input biz.CreateUserInput
	if !BindJSON(c, &input) {
		return
	}

	user, err := h.UserService.CreateUser(c.Request.Context(), input)
	if err != nil {
		Error(c, err)
		return
	}

	Created(c, user, "User created")
}

func (h *UserHandlers) Get(c *gin.Context) {
	user, err := h.UserService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		Error(c, err)
		return
	}

	OK(c, user, "")
}

func (h *UserHandlers) List(c *gin.Context) {
	var page objects.PageParams
	if !BindQuery(c, &page) {
		return
	}

	users, total, err := h.UserService.ListUsers(c.Request.Context(), page)
	if err != nil {
		Error(c, err)
		return
	}

	Page(c, users, page, total)
}

type userStatusRequest struct {
	Status objects.UserStatus `json:"status" binding:"required"`
}

func (h *UserHandlers) SetStatus(c *gin.Context) {
	var req userStatusRequest
	if !BindJSON(c, &req) {
		return
	}

	if err := h.UserService.SetUserStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		Error(c, err)
		return
	}

	OK(c, nil, "User status updated")
}
