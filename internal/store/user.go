package store

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fulexo/platform/internal/objects"
)

var userColumns = []string{
	"id", "tenant_id", "email", "name", "password_hash", "role", "status", "created_at", "updated_at",
}

// UserStore manages user rows. Users are tenant-owned; the unscoped
// lookups exist solely for credential verification before any tenant is
// bound and are gated on an audited bypass.
type UserStore struct {
	store *Store
}

func scanUser(row pgx.Row) (*objects.User, error) {
	var u objects.User

	err := row.Scan(
		&u.ID, &u.TenantID, &u.Email, &u.Name, &u.PasswordHash,
		&u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *UserStore) Create(ctx context.Context, user *objects.User) error {
	tenantID, err := stampTenant(ctx, user.TenantID)
	if err != nil {
		return err
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	user.TenantID = tenantID

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	query, args, err := psql.Insert("users").
		Columns(userColumns...).
		Values(user.ID, user.TenantID, user.Email, user.Name, user.PasswordHash,
			user.Role, user.Status, user.CreatedAt, user.UpdatedAt).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.store.q.Exec(ctx, query, args...)

	return err
}

func (r *UserStore) GetByID(ctx context.Context, id string) (*objects.User, error) {
	scope, err := scopeFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := scope.scopeSelect(
		psql.Select(userColumns...).From("users").Where(sq.Eq{"id": id}),
	).ToSql()
	if err != nil {
		return nil, err
	}

	return scanUser(r.store.q.QueryRow(ctx, query, args...))
}

func (r *UserStore) List(ctx context.Context, page objects.PageParams) ([]*objects.User, int64, error) {
	scope, err := scopeFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	page = page.Normalize()

	countQuery, countArgs, err := scope.scopeSelect(
		psql.Select("count(*)").From("users"),
	).ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.store.q.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query, args, err := scope.scopeSelect(
		psql.Select(userColumns...).From("users").
			OrderBy("created_at DESC").
			Limit(uint64(page.Limit)).
			Offset(uint64(page.Offset())),
	).ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.store.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []*objects.User

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}

		users = append(users, u)
	}

	return users, total, rows.Err()
}

func (r *UserStore) UpdateStatus(ctx context.Context, id string, status objects.UserStatus) error {
	scope, err := scopeFromContext(ctx)
	if err != nil {
		return err
	}

	query, args, err := scope.scopeUpdate(
		psql.Update("users").
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

// GetByEmailUnscoped looks a user up across tenants for credential
// verification. Requires an audited bypass.
func (r *UserStore) GetByEmailUnscoped(ctx context.Context, email string) (*objects.User, error) {
	if err := requireBypass(ctx); err != nil {
		return nil, err
	}

	query, args, err := psql.Select(userColumns...).From("users").Where(sq.Eq{"email": email}).ToSql()
	if err != nil {
		return nil, err
	}

	return scanUser(r.store.q.QueryRow(ctx, query, args...))
}

// GetByIDUnscoped looks a user up across tenants for token verification.
// Requires an audited bypass.
func (r *UserStore) GetByIDUnscoped(ctx context.Context, id string) (*objects.User, error) {
	if err := requireBypass(ctx); err != nil {
		return nil, err
	}

	query, args, err := psql.Select(userColumns...).From("users").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	return scanUser(r.store.q.QueryRow(ctx, query, args...))
}
