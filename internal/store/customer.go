package store

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fulexo/platform/internal/objects"
)

var customerColumns = []string{
	"id", "tenant_id", "email", "name", "phone", "created_at", "updated_at",
}

type CustomerStore struct {
	store *Store
}

func scanCustomer(row pgx.Row) (*objects.Customer, error) {
	var c objects.Customer

	err := row.Scan(&c.ID, &c.TenantID, &c.Email, &c.Name, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *CustomerStore) Create(ctx context.Context, customer *objects.Customer) error {
	tenantID, err := stampTenant(ctx, customer.TenantID)
	if err != nil {
		return err
	}

	if customer.ID == "" {
		customer.ID = uuid.NewString()
	}

	customer.TenantID = tenantID

	now := time.Now().UTC()
	customer.CreatedAt = now
	customer.UpdatedAt = now

	query, args, err := psql.Insert("customers").
		Columns(customerColumns...).
		Values(customer.ID, customer.TenantID, customer.Email, customer.Name, customer.Phone,
			customer.CreatedAt, customer.UpdatedAt).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.store.q.Exec(ctx, query, args...)

	return err
}

func (r *CustomerStore) GetByID(ctx context.Context, id string) (*objects.Customer, error) {
	scope, err := scopeFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := scope.scopeSelect(
		psql.Select(customerColumns...).From("customers").Where(sq.Eq{"id": id}),
	).ToSql()
	if err != nil {
		return nil, err
	}

	return scanCustomer(r.store.q.QueryRow(ctx, query, args...))
}

func (r *CustomerStore) GetByEmail(ctx context.Context, email string) (*objects.Customer, error) {
	scope, err := scopeFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := scope.scopeSelect(
		psql.Select(customerColumns...).From("customers").Where(sq.Eq{"email": email}),
	).ToSql()
	if err != nil {
		return nil, err
	}

	return scanCustomer(r.store.q.QueryRow(ctx, query, args...))
}

func (r *CustomerStore) List(ctx context.Context, page objects.PageParams) ([]*objects.Customer, int64, error) {
	scope, err := scopeFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	page = page.Normalize()

	countQuery, countArgs, err := scope.scopeSelect(
		psql.Select("count(*)").From("customers"),
	).ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.store.q.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query, args, err := scope.scopeSelect(
		psql.Select(customerColumns...).From("customers"),
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

	var customers []*objects.Customer

	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, err
		}

		customers = append(customers, c)
	}

	return customers, total, rows.Err()
}

func (r *CustomerStore) Update(ctx context.Context, customer *objects.Customer) error {
	scope, err := scopeFromContext(ctx)
	if err != nil {
		return err
	}

	customer.UpdatedAt = time.Now().UTC()

	query, args, err := scope.scopeUpdate(
		psql.Update("customers").
			Set("email", customer.Email).
			Set("name", customer.Name).
			Set("phone", customer.Phone).
			Set("updated_at", customer.UpdatedAt).
			Where(sq.Eq{"id": customer.ID}),
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

func (r *CustomerStore) Delete(ctx context.Context, id string) error {
	scope, err := scopeFromContext(ctx)
	if err != nil {
		return err
	}

	query, args, err := scope.scopeDelete(
		psql.Delete("customers").Where(sq.Eq{"id": id}),
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
