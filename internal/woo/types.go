package woo

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fulexo/platform/internal/objects"
)

// Order is the WooCommerce order wire shape, reduced to the fields the
// sync pipeline consumes. Monetary amounts arrive as strings.
type Order struct {
	ID          int64     `json:"id"`
	Number      string    `json:"number"`
	Status      string    `json:"status"`
	Total       string    `json:"total"`
	Currency    string    `json:"currency"`
	DateCreated time.Time `json:"date_created_gmt"`
}

type Product struct {
	ID            int64  `json:"id"`
	SKU           string `json:"sku"`
	Name          string `json:"name"`
	Price         string `json:"price"`
	StockQuantity *int   `json:"stock_quantity"`
	Status        string `json:"status"`
}

// orderStatuses maps WooCommerce statuses onto the platform lifecycle.
// Statuses we do not track degrade to pending so they are never lost.
var orderStatuses = map[string]objects.OrderStatus{
	"pending":    objects.OrderStatusPending,
	"on-hold":    objects.OrderStatusPending,
	"processing": objects.OrderStatusProcessing,
	"completed":  objects.OrderStatusCompleted,
	"cancelled":  objects.OrderStatusCancelled,
	"failed":     objects.OrderStatusCancelled,
	"refunded":   objects.OrderStatusRefunded,
}

// ToOrder converts the wire order into a platform order. TenantID and
// StoreID are stamped by the caller.
func (o Order) ToOrder() (*objects.Order, error) {
	total, err := decimal.NewFromString(o.Total)
	if err != nil {
		total = decimal.Zero
	}

	status, ok := orderStatuses[o.Status]
	if !ok {
		status = objects.OrderStatusPending
	}

	return &objects.Order{
		Number:    o.Number,
		Status:    status,
		Total:     total,
		Currency:  o.Currency,
		CreatedAt: o.DateCreated,
	}, nil
}

func (p Product) ToProduct() (*objects.Product, error) {
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		price = decimal.Zero
	}

	stock := 0
	if p.StockQuantity != nil {
		stock = *p.StockQuantity
	}

	return &objects.Product{
		SKU:    p.SKU,
		Name:   p.Name,
		Price:  price,
		Stock:  stock,
		Active: p.Status == "publish",
	}, nil
}
