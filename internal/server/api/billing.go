package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/fulexo/platform/internal/objects"
	"github.com/fulexo/platform/internal/server/biz"
)

type BillingHandlersParams struct {
	fx.In

	BillingService *biz.BillingService
}

func NewBillingHandlers(params BillingHandlersParams) *BillingHandlers {
	return &BillingHandlers{BillingService: params.BillingService}
}

type BillingHandlers struct {
	BillingService *biz.BillingService
}

func (h *BillingHandlers) Generate(c *gin.Context) {
	var input biz.GenerateBatchInput
	if !BindJSON(c, &input) {
		return
	}

	batch, err := h.BillingService.GenerateBatch(c.Request.Context(), input)
	if err != nil {
		Error(c, err)
		return
	}

	Created(c, batch, "Billing batch generated")
}

func (h *BillingHandlers) Get(c *gin.Context) {
	batch, err := h.BillingService.GetBatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		Error(c, err)
		return
	}

	OK(c, batch, "")
}

func (h *BillingHandlers) List(c *gin.Context) {
	var page objects.PageParams
	if !BindQuery(c, &page) {
		return
	}

	batches, total, err := h.BillingService.ListBatches(c.Request.Context(), page)
	if err != nil {
		Error(c, err)
		return
	}

	Page(c, batches, page, total)
}

type batchStatusRequest struct {
	Status objects.BillingBatchStatus `json:"status" binding:"required"`
}

func (h *BillingHandlers) SetStatus(c *gin.Context) {
	var req batchStatusRequest
	if !BindJSON(c, &req) {
		return
	}

	batch, err := h.BillingService.SetBatchStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		Error(c, err)
		return
	}

	OK(c, batch, "Billing batch status updated")
}
