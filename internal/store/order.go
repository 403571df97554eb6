package store

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fulexo/platform/internal/objects"
)

var orderColumns = []string{
	"id", "tenant_id", "store_id", "customer_id", "number", "status",
	"total", "currency", "created_at", "updated_at",
}

type OrderStore struct {
	store *Store
}

// OrderFilter narrows List results. Zero values are ignored.
type OrderFilter struct {
	Status  objects.OrderStatus
	StoreID string
	From    time.Time
	To      time.Time
}

func (f OrderFilter) apply(b sq.SelectBuilder) sq.SelectBuilder {
	if f.Status != "" {
		b = b.Where(sq.Eq{"status": f.Status})
	}

	if f.StoreID != "" {
		b = b.Where(sq.Eq{"store_id": f.StoreID})
	}

	if !f.From.IsZero() {
		b = b.Where(sq.GtOrEq{"created_at": f.From})
	}

	if !f.To.IsZero() {
		b = b.Where(sq.Lt{"created_at": f.To})
	}

	return b
}

func scanOrder(row pgx.Row) (*objects.Order, error) {
	var o objects.Order

	err := row.Scan(
		&o.ID, &o.TenantID, &o.StoreID, &o.CustomerID, &o.Number,
		&o.Status, &o.Total, &o.Currency, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *OrderStore) Create(ctx context.Context, order *objects.Order) error {
	tenantID, err := stampTenant(ctx, order.TenantID)
	if err != nil {
		return err
	}

	if order.ID == "" {
		order.ID = uuid.NewString()
	}

	order.TenantID = tenantID

	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now

	query, args, err := psql.Insert("orders").
		Columns(orderColumns...).
		Values(order.ID, order.TenantID, order.StoreID, order.CustomerID, order.Number,
			order.Status, order.Total, order.Currency, order.CreatedAt, order.UpdatedAt).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.store.q.Exec(ctx, query, args...)

	return err
}

func (r *OrderStore) GetByID(ctx context.Context, id string) (*objects.Order, error) {
	scope, err := scopeFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := scope.scopeSelect(
		psql.Select(orderColumns...).From("orders").Where(sq.Eq{"id": id}),
	).ToSql()
	if err != nil {
		return nil, err
	}

	return scanOrder(r.store.q.QueryRow(ctx, query, args...))
}

func (r *OrderStore) GetByNumber(ctx context.Context, number string) (*objects.Order, error) {
	scope, err := scopeFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := scope.scopeSelect(
		psql.Select(orderColumns...).From("orders").Where(sq.Eq{"number": number}),
	).ToSql()
	if err != nil {
		return nil, err
	}

	return scanOrder(r.store.q.QueryRow(ctx, query, args...))
}

func (r *OrderStore) List(ctx context.Context, filter OrderFilter, page objects.PageParams) ([]*objects.Order, int64, error) {
	scope, err := scopeFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	page = page.Normalize()

	countQuery, countArgs, err := filter.apply(scope.scopeSelect(
		psql.Select("count(*)").From("orders"),
	)).ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.store.q.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query, args, err := filter.apply(scope.scopeSelect(
		psql.Select(orderColumns...).From("orders"),
	)).
		OrderBy("created_at DESC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.store.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []*objects.Order

	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}

		orders = append(orders, o)
	}

	return orders, total, rows.Err()
}

func (r *OrderStore) UpdateStatus(ctx context.Context, id string, status objects.OrderStatus) error {
	scope, err := scopeFromContext(ctx)
	if err != nil {
		return err
	}

	query, args, err := scope.scopeUpdate(
		psql.Update("orders").
			Set("status", status).
			Set("updated_at", time.Now().UTC()).
			Where(sq.Eq{"id": id}),
	).ToSql()
	if err != nil {
		return err
	}

	tag, err := r.store.q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// Upsert inserts an order or refreshes a synced one keyed on the
// per-tenant order number. Used by the sync worker.
func (r *OrderStore) Upsert(ctx context.Context, order *objects.Order) error {
	tenantID, err := stampTenant(ctx, order.TenantID)
	if err != nil {
		return err
	}

	if order.ID == "" {
		order.ID = uuid.NewString()
	}

	order.TenantID = tenantID

	now := time.Now().UTC()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now

	query, args, err := psql.Insert("orders").
		Columns(orderColumns...).
		Values(order.ID, order.TenantID, order.StoreID, order.CustomerID, order.Number,
			order.Status, order.Total, order.Currency, order.CreatedAt, order.UpdatedAt).
		Suffix(`ON CONFLICT (tenant_id, number) DO UPDATE SET
			status = EXCLUDED.status,
			total = EXCLUDED.total,
			currency = EXCLUDED.currency,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.store.q.Exec(ctx, query, args...)

	return err
}

func (r *OrderStore) Delete(ctx context.Context, id string) error {
	scope, err := scopeFromContext(ctx)
	if err != nil {
		return err
	}

	query, args, err := scope.scopeDelete(
		psql.Delete("orders").Where(sq.Eq{"id": id}),
	).ToSql()
	if err != nil {
		return err
	}

	tag, err := r.store.q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}
