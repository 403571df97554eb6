package store

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fulexo/platform/internal/objects"
)

var tenantColumns = []string{"id", "name", "slug", "status", "created_at", "updated_at"}

// TenantStore manages tenant rows. Tenants are not tenant-owned rows
// themselves, so every operation here is tenant-agnostic and requires an
// audited bypass.
type TenantStore struct {
	store *Store
}

func scanTenant(row pgx.Row) (*objects.Tenant, error) {
	var t objects.Tenant

	err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *TenantStore) Create(ctx context.Context, tenant *objects.Tenant) error {
	if err := requireBypass(ctx); err != nil {
		return err
	}

	if tenant.ID == "" {
		tenant.ID = uuid.NewString()
	}

	now := time.Now().UTC()
	tenant.CreatedAt = now
	tenant.UpdatedAt = now

	query, args, err := psql.Insert("tenants").
		Columns(tenantColumns...).
		Values(tenant.ID, tenant.Name, tenant.Slug, tenant.Status, tenant.CreatedAt, tenant.UpdatedAt).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.store.q.Exec(ctx, query, args...)

	return err
}

func (r *TenantStore) GetByID(ctx context.Context, id string) (*objects.Tenant, error) {
	if err := requireBypass(ctx); err != nil {
		return nil, err
	}

	query, args, err := psql.Select(tenantColumns...).From("tenants").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	return scanTenant(r.store.q.QueryRow(ctx, query, args...))
}

func (r *TenantStore) GetBySlug(ctx context.Context, slug string) (*objects.Tenant, error) {
	if err := requireBypass(ctx); err != nil {
		return nil, err
	}

	query, args, err := psql.Select(tenantColumns...).From("tenants").Where(sq.Eq{"slug": slug}).ToSql()
	if err != nil {
		return nil, err
	}

	return scanTenant(r.store.q.QueryRow(ctx, query, args...))
}

func (r *TenantStore) List(ctx context.Context, page objects.PageParams) ([]*objects.Tenant, int64, error) {
	if err := requireBypass(ctx); err != nil {
		return nil, 0, err
	}

	page = page.Normalize()

	var total int64

	countQuery, _, err := psql.Select("count(*)").From("tenants").ToSql()
	if err != nil {
		return nil, 0, err
	}

	if err := r.store.q.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	query, args, err := psql.Select(tenantColumns...).From("tenants").
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

	var tenants []*objects.Tenant

	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, 0, err
		}

		tenants = append(tenants, t)
	}

	return tenants, total, rows.Err()
}

func (r *TenantStore) Count(ctx context.Context) (int64, error) {
	if err := requireBypass(ctx); err != nil {
		return 0, err
	}

	query, _, err := psql.Select("count(*)").From("tenants").ToSql()
	if err != nil {
		return 0, err
	}

	var total int64
	if err := r.store.q.QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}

func (r *TenantStore) UpdateStatus(ctx context.Context, id string, status objects.TenantStatus) error {
	if err := requireBypass(ctx); err != nil {
		return err
	}

	query, args, err := psql.Update("tenants").
		Set("status", status).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		ToSql()
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
