package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/fulexo/platform/internal/objects"
	"github.com/fulexo/platform/internal/server/biz"
)

type TenantHandlersParams struct {
	fx.In

	TenantService *biz.TenantService
}

func NewTenantHandlers(params TenantHandlersParams) *TenantHandlers {
	return &TenantHandlers{TenantService: params.TenantService}
}

// TenantHandlers serves the admin-only tenant management endpoints.
type TenantHandlers struct {
	TenantService *biz.TenantService
}

func (h *TenantHandlers) Create(c *gin.Context) {
	var input biz.CreateTenantInput
	if !BindJSON(c, &input) {
		return
	}

	tenant, err := h.TenantService.CreateTenant(c.Request.Context(), input)
	if err != nil {
		Error(c, err)
		return
	}

	Created(c, tenant, "Tenant created")
}

func (h *TenantHandlers) Get(c *gin.Context) {
	tenant, err := h.TenantService.GetTenant(c.Request.Context(), c.Param("id"))
	if err != nil {
		Error(c, err)
		return
	}

	OK(c, tenant, "")
}

func (h *TenantHandlers) List(c *gin.Context) {
	var page objects.PageParams
	if !BindQuery(c, &page) {
		return
	}

	tenants, total, err := h.TenantService.ListTenants(c.Request.Context(), page)
	if err != nil {
		Error(c, err)
		return
	}

	Page(c, tenants, page, total)
}

type tenantStatusRequest struct {
	Status objects.TenantStatus `json:"status" binding:"required"`
}

func (h *TenantHandlers) SetStatus(c *gin.Context) {
	var req tenantStatusRequest
	if !BindJSON(c, &req) {
		return
	}

	if err := h.TenantService.SetTenantStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		Error(c, err)
		return
	}

	OK(c, nil, "Tenant status updated")
}
