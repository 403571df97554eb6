package biz

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"github.com/fulexo/platform/internal/errs"
	"github.com/fulexo/platform/internal/log"
	"github.com/fulexo/platform/internal/objects"
	"github.com/fulexo/platform/internal/store"
)

type OrderServiceParams struct {
	fx.In

	Store *store.Store
}

func NewOrderService(params OrderServiceParams) *OrderService {
	return &OrderService{
		AbstractService: &AbstractService{store: params.Store},
	}
}

type OrderService struct {
	*AbstractService
}

type CreateOrderInput struct {
	StoreID    string          `json:"storeId"`
	CustomerID string          `json:"customerId"`
	Number     string          `json:"number" binding:"required"`
	Total      decimal.Decimal `json:"total"`
	Currency   string          `json:"currency"`
}

func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*objects.Order, error) {
	if input.Total.IsNegative() {
		return nil, errs.Validation("Order total cannot be negative", map[string]any{"total": input.Total})
	}

	currency := input.Currency
	if currency == "" {
		currency = "EUR"
	}

	order := &objects.Order{
		Number:   input.Number,
		Status:   objects.OrderStatusPending,
		Total:    input.Total,
		Currency: currency,
	}

	if input.StoreID != "" {
		// Reject orders pointing at another tenant's shop; the scoped
		// lookup fails on foreign rows.
		if _, err := s.store.Shops().GetByID(ctx, input.StoreID); err != nil {
			if store.IsNotFound(err) {
				return nil, errs.Validation("Unknown store", map[string]any{"storeId": input.StoreID})
			}

			return nil, err
		}

		order.StoreID = &input.StoreID
	}

	if input.CustomerID != "" {
		if _, err := s.store.Customers().GetByID(ctx, input.CustomerID); err != nil {
			if store.IsNotFound(err) {
				return nil, errs.Validation("Unknown customer", map[string]any{"customerId": input.CustomerID})
			}

			return nil, err
		}

		order.CustomerID = &input.CustomerID
	}

	if _, err := s.store.Orders().GetByNumber(ctx, input.Number); err == nil {
		return nil, errs.Conflict("Order number already exists")
	} else if !store.IsNotFound(err) {
		return nil, err
	}

	if err := s.store.Orders().Create(ctx, order); err != nil {
		return nil, err
	}

	log.Info(ctx, "order created",
		log.String("order_id", order.ID),
		log.String("number", order.Number),
	)

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*objects.Order, error) {
	order, err := s.store.Orders().GetByID(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, errs.NotFound("Order", id)
		}

		return nil, err
	}

	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, filter store.OrderFilter, page objects.PageParams) ([]*objects.Order, int64, error) {
	return s.store.Orders().List(ctx, filter, page)
}

// validOrderTransitions encodes the order lifecycle.
var validOrderTransitions = map[objects.OrderStatus][]objects.OrderStatus{
	objects.OrderStatusPending:    {objects.OrderStatusProcessing, objects.OrderStatusCancelled},
	objects.OrderStatusProcessing: {objects.OrderStatusCompleted, objects.OrderStatusCancelled},
	objects.OrderStatusCompleted:  {objects.OrderStatusRefunded},
	objects.OrderStatusCancelled:  {},
	objects.OrderStatusRefunded:   {},
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, id string, status objects.OrderStatus) (*objects.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed := false

	for _, next := range validOrderTransitions[order.Status] {
		if next == status {
			allowed = true
			break
		}
	}

	if !allowed {
		return nil, errs.Business(fmt.Sprintf("Invalid status transition from %s to %s", order.Status, status))
	}

	if err := s.store.Orders().UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	order.Status = status

	log.Info(ctx, "order status updated",
		log.String("order_id", id),
		log.String("status", string(status)),
	)

	return order, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	if err := s.store.Orders().Delete(ctx, id); err != nil {
		if store.IsNotFound(err) {
			return errs.NotFound("Order", id)
		}

		return err
	}

	return nil
}
