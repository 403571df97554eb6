package api

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"github.com/fulexo/platform/internal/objects"
	"github.com/fulexo/platform/internal/server/biz"
)

type ProductHandlersParams struct {
	fx.In

	ProductService *biz.ProductService
}

func NewProductHandlers(params ProductHandlersParams) *ProductHandlers {
	return &ProductHandlers{ProductService: params.ProductService}
}

type ProductHandlers struct {
	ProductService *biz.ProductService
}

func (h *ProductHandlers) Create(c *gin.Context) {
	var input biz.CreateProductInput
	if !BindJSON(c, &input) {
		return
	}

	product, err := h.ProductService.CreateProduct(c.Request.Context(), input)
	if err != nil {
		Error(c, err)
		return
	}

	Created(c, product, "Product created")
}

func (h *ProductHandlers) Get(c *gin.Context) {
	product, err := h.ProductService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		Error(c, err)
		return
	}

	OK(c, product, "")
}

func (h *ProductHandlers) List(c *gin.Context) {
	var page objects.PageParams
	if !BindQuery(c, &page) {
		return
	}

	products, total, err := h.ProductService.ListProducts(c.Request.Context(), page)
	if err != nil {
		Error(c, err)
		return
	}

	Page(c, products, page, total)
}

type productPriceRequest struct {
	Price decimal.Decimal `json:"price" binding:"required"`
}

func (h *ProductHandlers) SetPrice(c *gin.Context) {
	var req productPriceRequest
	if !BindJSON(c, &req) {
		return
	}

	if err := h.ProductService.UpdatePrice(c.Request.Context(), c.Param("id"), req.Price); err != nil {
		Error(c, err)
		return
	}

	OK(c, nil, "Product price updated")
}

type productStockRequest struct {
	Stock *int `json:"stock" binding:"required"`
}

func (h *ProductHandlers) SetStock(c *gin.Context) {
	var req productStockRequest
	if !BindJSON(c, &req) {
		return
	}

	if err := h.ProductService.UpdateStock(c.Request.Context(), c.Param("id"), *req.Stock); err != nil {
		Error(c, err)
		return
	}

	OK(c, nil, "Product stock updated")
}

func (h *ProductHandlers) Delete(c *gin.Context) {
	if err := h.ProductService.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		Error(c, err)
		return
	}

	OK(c, nil, "Product deleted")
}
