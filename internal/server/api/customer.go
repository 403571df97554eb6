package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/fulexo/platform/internal/objects"
	"github.com/fulexo/platform/internal/server/biz"
)

type CustomerHandlersParams struct {
	fx.In

	CustomerService *biz.CustomerService
}

func NewCustomerHandlers(params CustomerHandlersParams) *CustomerHandlers {
	return &CustomerHandlers{CustomerService: params.CustomerService}
}

type CustomerHandlers struct {
	CustomerService *biz.CustomerService
}

func (h *CustomerHandlers) Create(c *gin.Context) {
	var input biz.CustomerInput
	if !BindJSON(c, &input) {
		return
	}

	customer, err := h.CustomerService.CreateCustomer(c.Request.Context(), input)
	if err != nil {
		Error(c, err)
		return
	}

	Created(c, customer, "Customer created")
}

func (h *CustomerHandlers) Get(c *gin.Context) {
	customer, err := h.CustomerService.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		Error(c, err)
		return
	}

	OK(c, customer, "")
}

func (h *CustomerHandlers) List(c *gin.Context) {
	var page objects.PageParams
	if !BindQuery(c, &page) {
		return
	}

	customers, total, err := h.CustomerService.ListCustomers(c.Request.Context(), page)
	if err != nil {
		Error(c, err)
		return
	}

	Page(c, customers, page, total)
}

func (h *CustomerHandlers) Update(c *gin.Context) {
	var input biz.CustomerInput
	if !BindJSON(c, &input) {
		return
	}

	customer, err := h.CustomerService.UpdateCustomer(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		Error(c, err)
		return
	}

	OK(c, customer, "Customer updated")
}

func (h *CustomerHandlers) Delete(c *gin.Context) {
	if err := h.CustomerService.DeleteCustomer(c.Request.Context(), c.Param("id")); err != nil {
		Error(c, err)
		return
	}

	OK(c, nil, "Customer deleted")
}
