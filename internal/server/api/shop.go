package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/fulexo/platform/internal/objects"
	"github.com/fulexo/platform/internal/server/biz"
	"github.com/fulexo/platform/internal/server/worker"
)

type ShopHandlersParams struct {
	fx.In

	ShopService *biz.ShopService
	Queue       *worker.Queue
}

func NewShopHandlers(params ShopHandlersParams) *ShopHandlers {
	return &ShopHandlers{
		ShopService: params.ShopService,
		Queue:       params.Queue,
	}
}

// ShopHandlers manages WooCommerce store connections.
type ShopHandlers struct {
	ShopService *biz.ShopService
	Queue       *worker.Queue
}

func (h *ShopHandlers) Connect(c *gin.Context) {
	var input biz.ConnectShopInput
	if !BindJSON(c, &input) {
		return
	}

	shop, err := h.ShopService.ConnectShop(c.Request.Context(), input)
	if err != nil {
		Error(c, err)
		return
	}

	Created(c, shop, "Store connected")
}

func (h *ShopHandlers) Get(c *gin.Context) {
	shop, err := h.ShopService.GetShop(c.Request.Context(), c.Param("id"))
	if err != nil {
		Error(c, err)
		return
	}

	OK(c, shop, "")
}

func (h *ShopHandlers) List(c *gin.Context) {
	var page objects.PageParams
	if !BindQuery(c, &page) {
		return
	}

	shops, total, err := h.ShopService.ListShops(c.Request.Context(), page)
	if err != nil {
		Error(c, err)
		return
	}

	Page(c, shops, page, total)
}

// Sync enqueues a background sync for the store. The shop lookup runs
// tenant-scoped first so a caller can never enqueue work for a store it
// does not own.
func (h *ShopHandlers) Sync(c *gin.Context) {
	ctx := c.Request.Context()

	shop, err := h.ShopService.GetShop(ctx, c.Param("id"))
	if err != nil {
		Error(c, err)
		return
	}

	if err := h.Queue.EnqueueShopSync(ctx, shop.TenantID, shop.ID); err != nil {
		Error(c, err)
		return
	}

	OK(c, gin.H{"shopId": shop.ID, "queued": true}, "Sync scheduled")
}

func (h *ShopHandlers) Disconnect(c *gin.Context) {
	if err := h.ShopService.DisconnectShop(c.Request.Context(), c.Param("id")); err != nil {
		Error(c, err)
		return
	}

	OK(c, nil, "Store disconnected")
}

func (h *ShopHandlers) Delete(c *gin.Context) {
	if err := h.ShopService.DeleteShop(c.Request.Context(), c.Param("id")); err != nil {
		Error(c, err)
		return
	}

	OK(c, nil, "Store deleted")
}
