// Package objects holds the plain domain entities and wire types shared
// between the store, biz and api layers.
package objects

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role is the fixed role enumeration. A user has exactly one role.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCustomer
}

func (r Role) String() string {
	return string(r)
}

// UserStatus tracks whether an account may authenticate.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusDisabled UserStatus = "disabled"
)

// User belongs to exactly one tenant.
type User struct {
	ID           string     `json:"id"`
	TenantID     string     `json:"tenantId"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Status       UserStatus `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// TenantStatus tracks whether a tenant is serviceable.
type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
)

// Tenant is the isolation root. It is the only aggregate that is not
// itself tenant-scoped.
type Tenant struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Slug      string       `json:"slug"`
	Status    TenantStatus `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// OrderStatus mirrors the WooCommerce order lifecycle we care about.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

type Order struct {
	ID         string          `json:"id"`
	TenantID   string          `json:"tenantId"`
	StoreID    *string         `json:"storeId,omitempty"`
	CustomerID *string         `json:"customerId,omitempty"`
	Number     string          `json:"number"`
	Status     OrderStatus     `json:"status"`
	Total      decimal.Decimal `json:"total"`
	Currency   string          `json:"currency"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

type Product struct {
	ID        string          `json:"id"`
	TenantID  string          `json:"tenantId"`
	StoreID   *string         `json:"storeId,omitempty"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type Customer struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenantId"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StoreStatus tracks the health of a WooCommerce connection.
type StoreStatus string

const (
	StoreStatusConnected    StoreStatus = "connected"
	StoreStatusDisconnected StoreStatus = "disconnected"
	StoreStatusSyncing      StoreStatus = "syncing"
)

// Store is a WooCommerce connection owned by a tenant. ConsumerKey and
// ConsumerSecret are encrypted at rest and never serialized.
type Store struct {
	ID             string      `json:"id"`
	TenantID       string      `json:"tenantId"`
	Name           string      `json:"name"`
	BaseURL        string      `json:"baseUrl"`
	ConsumerKey    string      `json:"-"`
	ConsumerSecret string      `json:"-"`
	Status         StoreStatus `json:"status"`
	LastSyncAt     *time.Time  `json:"lastSyncAt,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// BillingBatchStatus is the billing batch lifecycle.
type BillingBatchStatus string

const (
	BillingBatchStatusDraft     BillingBatchStatus = "draft"
	BillingBatchStatusFinalized BillingBatchStatus = "finalized"
	BillingBatchStatusPaid      BillingBatchStatus = "paid"
)

type BillingBatch struct {
	ID          string             `json:"id"`
	TenantID    string             `json:"tenantId"`
	PeriodStart time.Time          `json:"periodStart"`
	PeriodEnd   time.Time          `json:"periodEnd"`
	Total       decimal.Decimal    `json:"total"`
	Currency    string             `json:"currency"`
	Status      BillingBatchStatus `json:"status"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

type CalendarEvent struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenantId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
	AllDay      bool      `json:"allDay"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
