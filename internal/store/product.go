package store

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/fulexo/platform/internal/objects"
)

var productColumns = []string{
	"id", "tenant_id", "store_id", "sku", "name", "price", "stock", "active",
	"created_at", "updated_at",
}

type ProductStore struct {
	store *Store
}

func scanProduct(row pgx.Row) (*objects.Product, error) {
	var p objects.Product

	err := row.Scan(
		&p.ID, &p.TenantID, &p.StoreID, &p.SKU, &p.Name, &p.Price,
		&p.Stock, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *ProductStore) Create(ctx context.Context, product *objects.Product) error {
	tenantID, err := stampTenant(ctx, product.TenantID)
	if err != nil {
		return err
	}

	if product.ID == "" {
		product.ID = uuid.NewString()
	}

	product.TenantID = tenantID

	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	query, args, err := psql.Insert("products").
		Columns(productColumns...).
		Values(product.ID, product.TenantID, product.StoreID, product.SKU, product.Name,
			product.Price, product.Stock, product.Active, product.CreatedAt, product.UpdatedAt).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.store.q.Exec(ctx, query, args...)

	return err
}

func (r *ProductStore) GetByID(ctx context.Context, id string) (*objects.Product, error) {
	scope, err := scopeFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := scope.scopeSelect(
		psql.Select(productColumns...).From("products").Where(sq.Eq{"id": id}),
	).ToSql()
	if err != nil {
		return nil, err
	}

	return scanProduct(r.store.q.QueryRow(ctx, query, args...))
}

func (r *ProductStore) GetBySKU(ctx context.Context, sku string) (*objects.Product, error) {
	scope, err := scopeFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := scope.scopeSelect(
		psql.Select(productColumns...).From("products").Where(sq.Eq{"sku": sku}),
	).ToSql()
	if err != nil {
		return nil, err
	}

	return scanProduct(r.store.q.QueryRow(ctx, query, args...))
}

func (r *ProductStore) List(ctx context.Context, page objects.PageParams) ([]*objects.Product, int64, error) {
	scope, err := scopeFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	page = page.Normalize()

	countQuery, countArgs, err := scope.scopeSelect(
		psql.Select("count(*)").From("products"),
	).ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.store.q.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query, args, err := scope.scopeSelect(
		psql.Select(productColumns...).From("products"),
	).
		OrderBy("name ASC").
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

	var products []*objects.Product

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}

		products = append(products, p)
	}

	return products, total, rows.Err()
}

func (r *ProductStore) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) error {
	scope, err := scopeFromContext(ctx)
	if err != nil {
		return err
	}

	query, args, err := scope.scopeUpdate(
		psql.Update("products").
			Set("price", price).
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

func (r *ProductStore) UpdateStock(ctx context.Context, id string, stock int) error {
	scope, err := scopeFromContext(ctx)
	if err != nil {
		return err
	}

	query, args, err := scope.scopeUpdate(
		psql.Update("products").
			Set("stock", stock).
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

// Upsert inserts a product or refreshes a synced one keyed on the
// per-tenant SKU. Used by the sync worker.
func (r *ProductStore) Upsert(ctx context.Context, product *objects.Product) error {
	tenantID, err := stampTenant(ctx, product.TenantID)
	if err != nil {
		return err
	}

	if product.ID == "" {
		product.ID = uuid.NewString()
	}

	product.TenantID = tenantID

	now := time.Now().UTC()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	query, args, err := psql.Insert("products").
		Columns(productColumns...).
		Values(product.ID, product.TenantID, product.StoreID, product.SKU, product.Name,
			product.Price, product.Stock, product.Active, product.CreatedAt, product.UpdatedAt).
		Suffix(`ON CONFLICT (tenant_id, sku) DO UPDATE SET
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			stock = EXCLUDED.stock,
			active = EXCLUDED.active,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.store.q.Exec(ctx, query, args...)

	return err
}

func (r *ProductStore) Delete(ctx context.Context, id string) error {
	scope, err := scopeFromContext(ctx)
	if err != nil {
		return err
	}

	query, args, err := scope.scopeDelete(
		psql.Delete("products").Where(sq.Eq{"id": id}),
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
