package biz

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"github.com/fulexo/platform/internal/errs"
	"github.com/fulexo/platform/internal/log"
	"github.com/fulexo/platform/internal/objects"
	"github.com/fulexo/platform/internal/store"
)

type ProductServiceParams struct {
	fx.In

	Store *store.Store
}

func NewProductService(params ProductServiceParams) *ProductService {
	return &ProductService{
		AbstractService: &AbstractService{store: params.Store},
	}
}

type ProductService struct {
	*AbstractService
}

type CreateProductInput struct {
	StoreID string          `json:"storeId"`
	SKU     string          `json:"sku" binding:"required"`
	Name    string          `json:"name" binding:"required"`
	Price   decimal.Decimal `json:"price"`
	Stock   int             `json:"stock"`
}

func (s *ProductService) CreateProduct(ctx context.Context, input CreateProductInput) (*objects.Product, error) {
	if input.Price.IsNegative() {
		return nil, errs.Validation("Price cannot be negative", map[string]any{"price": input.Price})
	}

	if input.Stock < 0 {
		return nil, errs.Validation("Stock cannot be negative", map[string]any{"stock": input.Stock})
	}

	product := &objects.Product{
		SKU:    input.SKU,
		Name:   input.Name,
		Price:  input.Price,
		Stock:  input.Stock,
		Active: true,
	}

	if input.StoreID != "" {
		if _, err := s.store.Shops().GetByID(ctx, input.StoreID); err != nil {
			if store.IsNotFound(err) {
				return nil, errs.Validation("Unknown store", map[string]any{"storeId": input.StoreID})
			}

			return nil, err
		}

		product.StoreID = &input.StoreID
	}

	if _, err := s.store.Products().GetBySKU(ctx, input.SKU); err == nil {
		return nil, errs.Conflict("SKU already exists")
	} else if !store.IsNotFound(err) {
		return nil, err
	}

	if err := s.store.Products().Create(ctx, product); err != nil {
		return nil, err
	}

	log.Info(ctx, "product created",
		log.String("product_id", product.ID),
		log.String("sku", product.SKU),
	)

	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*objects.Product, error) {
	product, err := s.store.Products().GetByID(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, errs.NotFound("Product", id)
		}

		return nil, err
	}

	return product, nil
}

func (s *ProductService) ListProducts(ctx context.Context, page objects.PageParams) ([]*objects.Product, int64, error) {
	return s.store.Products().List(ctx, page)
}

func (s *ProductService) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.Validation("Price cannot be negative", map[string]any{"price": price})
	}

	if err := s.store.Products().UpdatePrice(ctx, id, price); err != nil {
		if store.IsNotFound(err) {
			return errs.NotFound("Product", id)
		}

		return err
	}

	return nil
}

func (s *ProductService) UpdateStock(ctx context.Context, id string, stock int) error {
	if stock < 0 {
		return errs.Validation("Stock cannot be negative", map[string]any{"stock": stock})
	}

	if err := s.store.Products().UpdateStock(ctx, id, stock); err != nil {
		if store.IsNotFound(err) {
			return errs.NotFound("Product", id)
		}

		return err
	}

	return nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.store.Products().Delete(ctx, id); err != nil {
		if store.IsNotFound(err) {
			return errs.NotFound("Product", id)
		}

		return err
	}

	return nil
}
