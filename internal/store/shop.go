package store

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fulexo/platform/internal/objects"
)

var shopColumns = []string{
	"id", "tenant_id", "name", "base_url", "consumer_key", "consumer_secret",
	"status", "last_sync_at", "created_at", "updated_at",
}

// ShopStore manages WooCommerce connections. Credential columns hold
// ciphertext; encryption happens in the biz layer before rows reach
// this store.
type ShopStore struct {
	store *Store
}

func scanShop(row pgx.Row) (*objects.Store, error) {
	var s objects.Store

	err := row.Scan(
		&s.ID, &s.TenantID, &s.Name, &s.BaseURL, &s.ConsumerKey, &s.ConsumerSecret,
		&s.Status, &s.LastSyncAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *ShopStore) Create(ctx context.Context, shop *objects.Store) error {
	tenantID, err := stampTenant(ctx, shop.TenantID)
	if err != nil {
		return err
	}

	if shop.ID == "" {
		shop.ID = uuid.NewString()
	}

	shop.TenantID = tenantID

	now := time.Now().UTC()
	shop.CreatedAt = now
	shop.UpdatedAt = now

	query, args, err := psql.Insert("shops").
		Columns(shopColumns...).
		Values(shop.ID, shop.TenantID, shop.Name, shop.BaseURL, shop.ConsumerKey,
			shop.ConsumerSecret, shop.Status, shop.LastSyncAt, shop.CreatedAt, shop.UpdatedAt).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.store.q.Exec(ctx, query, args...)

	return err
}

func (r *ShopStore) GetByID(ctx context.Context, id string) (*objects.Store, error) {
	scope, err := scopeFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := scope.scopeSelect(
		psql.Select(shopColumns...).From("shops").Where(sq.Eq{"id": id}),
	).ToSql()
	if err != nil {
		return nil, err
	}

	return scanShop(r.store.q.QueryRow(ctx, query, args...))
}

func (r *ShopStore) List(ctx context.Context, page objects.PageParams) ([]*objects.Store, int64, error) {
	scope, err := scopeFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	page = page.Normalize()

	countQuery, countArgs, err := scope.scopeSelect(
		psql.Select("count(*)").From("shops"),
	).ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.store.q.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query, args, err := scope.scopeSelect(
		psql.Select(shopColumns...).From("shops"),
	).
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

	var shops []*objects.Store

	for rows.Next() {
		s, err := scanShop(rows)
		if err != nil {
			return nil, 0, err
		}

		shops = append(shops, s)
	}

	return shops, total, rows.Err()
}

func (r *ShopStore) Update(ctx context.Context, shop *objects.Store) error {
	scope, err := scopeFromContext(ctx)
	if err != nil {
		return err
	}

	shop.UpdatedAt = time.Now().UTC()

	query, args, err := scope.scopeUpdate(
		psql.Update("shops").
			Set("name", shop.Name).
			Set("base_url", shop.BaseURL).
			Set("consumer_key", shop.ConsumerKey).
			Set("consumer_secret", shop.ConsumerSecret).
			Set("status", shop.Status).
			Set("updated_at", shop.UpdatedAt).
			Where(sq.Eq{"id": shop.ID}),
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

func (r *ShopStore) MarkSynced(ctx context.Context, id string, at time.Time) error {
	scope, err := scopeFromContext(ctx)
	if err != nil {
		return err
	}

	query, args, err := scope.scopeUpdate(
		psql.Update("shops").
			Set("status", objects.StoreStatusConnected).
			Set("last_sync_at", at).
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

func (r *ShopStore) UpdateStatus(ctx context.Context, id string, status objects.StoreStatus) error {
	scope, err := scopeFromContext(ctx)
	if err != nil {
		return err
	}

	query, args, err := scope.scopeUpdate(
		psql.Update("shops").
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

func (r *ShopStore) Delete(ctx context.Context, id string) error {
	scope, err := scopeFromContext(ctx)
	if err != nil {
		return err
	}

	query, args, err := scope.scopeDelete(
		psql.Delete("shops").Where(sq.Eq{"id": id}),
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

// ListAllUnscoped returns every shop across tenants for the sync
// scheduler. Requires an audited bypass; the worker binds each shop's
// tenant before touching its rows.
func (r *ShopStore) ListAllUnscoped(ctx context.Context) ([]*objects.Store, error) {
	if err := requireBypass(ctx); err != nil {
		return nil, err
	}

	query, args, err := psql.Select(shopColumns...).From("shops").OrderBy("created_at ASC").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.store.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shops []*objects.Store

	for rows.Next() {
		s, err := scanShop(rows)
		if err != nil {
			return nil, err
		}

		shops = append(shops, s)
	}

	return shops, rows.Err()
}
