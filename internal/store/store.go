// Package store is the data access layer. Every tenant-owned repository
// builds its queries through a tenant scope derived from the ambient
// request context, so handler code cannot express a query that silently
// ignores the bound tenant. Cross-tenant access goes through the
// explicitly audited authz bypass and the distinctly named *Unscoped
// methods.
package store

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// psql builds queries with postgres placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Querier is the query surface shared by *pgxpool.Pool and pgx.Tx, so
// repositories run unchanged inside transactions.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store is the central data access object. Callers use the domain methods
// on the repository accessors rather than the pool directly.
type Store struct {
	pool *pgxpool.Pool // nil when bound to a transaction
	q    Querier

	users     *UserStore
	tenants   *TenantStore
	orders    *OrderStore
	products  *ProductStore
	customers *CustomerStore
	shops     *ShopStore
	billing   *BillingStore
	calendar  *CalendarStore
}

// New creates a Store backed by pool.
func New(pool *pgxpool.Pool) *Store {
	s := newWithQuerier(pool)
	s.pool = pool

	return s
}

func newWithQuerier(q Querier) *Store {
	s := &Store{q: q}
	s.users = &UserStore{store: s}
	s.tenants = &TenantStore{store: s}
	s.orders = &OrderStore{store: s}
	s.products = &ProductStore{store: s}
	s.customers = &CustomerStore{store: s}
	s.shops = &ShopStore{store: s}
	s.billing = &BillingStore{store: s}
	s.calendar = &CalendarStore{store: s}

	return s
}

func (s *Store) Users() *UserStore         { return s.users }
func (s *Store) Tenants() *TenantStore     { return s.tenants }
func (s *Store) Orders() *OrderStore       { return s.orders }
func (s *Store) Products() *ProductStore   { return s.products }
func (s *Store) Customers() *CustomerStore { return s.customers }
func (s *Store) Shops() *ShopStore         { return s.shops }
func (s *Store) Billing() *BillingStore    { return s.billing }
func (s *Store) Calendar() *CalendarStore  { return s.calendar }

// WithTx runs fn against a store bound to a transaction. The transaction
// commits if fn returns nil and rolls back otherwise.
func (s *Store) WithTx(ctx context.Context, fn func(*Store) error) error {
	if s.pool == nil {
		// Already inside a transaction.
		return fn(s)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(newWithQuerier(tx)); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	return tx.Commit(ctx)
}

// Ping verifies database connectivity for health checks.
func (s *Store) Ping(ctx context.Context) error {
	if s.pool == nil {
		return nil
	}

	return s.pool.Ping(ctx)
}

// IsNotFound reports whether err is the no-rows error.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
