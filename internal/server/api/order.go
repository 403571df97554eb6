package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/fulexo/platform/internal/objects"
	"github.com/fulexo/platform/internal/server/biz"
	"github.com/fulexo/platform/internal/store"
)

type OrderHandlersParams struct {
	fx.In

	OrderService *biz.OrderService
}

func NewOrderHandlers(params OrderHandlersParams) *OrderHandlers {
	return &OrderHandlers{OrderService: params.OrderService}
}

type OrderHandlers struct {
	OrderService *biz.OrderService
}

func (h *OrderHandlers) Create(c *gin.Context) {
	var input biz.CreateOrderInput
	if !BindJSON(c, &input) {
		return
	}

	order, err := h.OrderService.CreateOrder(c.Request.Context(), input)
	if err != nil {
		Error(c, err)
		return
	}

	Created(c, order, "Order created")
}

func (h *OrderHandlers) Get(c *gin.Context) {
	order, err := h.OrderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		Error(c, err)
		return
	}

	OK(c, order, "")
}

type listOrdersQuery struct {
	objects.PageParams
	Status  string    `form:"status"`
	StoreID string    `form:"storeId"`
	From    time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To      time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}

func (h *OrderHandlers) List(c *gin.Context) {
	var query listOrdersQuery
	if !BindQuery(c, &query) {
		return
	}

	filter := store.OrderFilter{
		Status:  objects.OrderStatus(query.Status),
		StoreID: query.StoreID,
		From:    query.From,
		To:      query.To,
	}

	orders, total, err := h.OrderService.ListOrders(c.Request.Context(), filter, query.PageParams)
	if err != nil {
		Error(c, err)
		return
	}

	Page(c, orders, query.PageParams, total)
}

type orderStatusRequest struct {
	Status objects.OrderStatus `json:"status" binding:"required"`
}

func (h *OrderHandlers) SetStatus(c *gin.Context) {
	var req orderStatusRequest
	if !BindJSON(c, &req) {
		return
	}

	order, err := h.OrderService.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		Error(c, err)
		return
	}

	OK(c, order, "Order status updated")
}

func (h *OrderHandlers) Delete(c *gin.Context) {
	if err := h.OrderService.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		Error(c, err)
		return
	}

	OK(c, nil, "Order deleted")
}
