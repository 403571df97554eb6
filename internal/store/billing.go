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

var billingColumns = []string{
	"id", "tenant_id", "period_start", "period_end", "total", "currency",
	"status", "created_at", "updated_at",
}

type BillingStore struct {
	store *Store
}

func scanBillingBatch(row pgx.Row) (*objects.BillingBatch, error) {
	var b objects.BillingBatch

	err := row.Scan(
		&b.ID, &b.TenantID, &b.PeriodStart, &b.PeriodEnd, &b.Total,
		&b.Currency, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BillingStore) Create(ctx context.Context, batch *objects.BillingBatch) error {
	tenantID, err := stampTenant(ctx, batch.TenantID)
	if err != nil {
		return err
	}

	if batch.ID == "" {
		batch.ID = uuid.NewString()
	}

	batch.TenantID = tenantID

	now := time.Now().UTC()
	batch.CreatedAt = now
	batch.UpdatedAt = now

	query, args, err := psql.Insert("billing_batches").
		Columns(billingColumns...).
		Values(batch.ID, batch.TenantID, batch.PeriodStart, batch.PeriodEnd, batch.Total,
			batch.Currency, batch.Status, batch.CreatedAt, batch.UpdatedAt).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.store.q.Exec(ctx, query, args...)

	return err
}

func (r *BillingStore) GetByID(ctx context.Context, id string) (*objects.BillingBatch, error) {
	scope, err := scopeFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := scope.scopeSelect(
		psql.Select(billingColumns...).From("billing_batches").Where(sq.Eq{"id": id}),
	).ToSql()
	if err != nil {
		return nil, err
	}

	return scanBillingBatch(r.store.q.QueryRow(ctx, query, args...))
}

func (r *BillingStore) List(ctx context.Context, page objects.PageParams) ([]*objects.BillingBatch, int64, error) {
	scope, err := scopeFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	page = page.Normalize()

	countQuery, countArgs, err := scope.scopeSelect(
		psql.Select("count(*)").From("billing_batches"),
	).ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.store.q.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query, args, err := scope.scopeSelect(
		psql.Select(billingColumns...).From("billing_batches"),
	).
		OrderBy("period_start DESC").
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

	var batches []*objects.BillingBatch

	for rows.Next() {
		b, err := scanBillingBatch(rows)
		if err != nil {
			return nil, 0, err
		}

		batches = append(batches, b)
	}

	return batches, total, rows.Err()
}

func (r *BillingStore) UpdateStatus(ctx context.Context, id string, status objects.BillingBatchStatus) error {
	scope, err := scopeFromContext(ctx)
	if err != nil {
		return err
	}

	query, args, err := scope.scopeUpdate(
		psql.Update("billing_batches").
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

// OrderTotal sums completed order totals inside a period for the bound
// tenant. Feeds batch generation.
func (r *BillingStore) OrderTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	scope, err := scopeFromContext(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	query, args, err := scope.scopeSelect(
		psql.Select("COALESCE(SUM(total), 0)").From("orders").
			Where(sq.Eq{"status": objects.OrderStatusCompleted}).
			Where(sq.GtOrEq{"created_at": from}).
			Where(sq.Lt{"created_at": to}),
	).ToSql()
	if err != nil {
		return decimal.Zero, err
	}

	var total decimal.Decimal
	if err := r.store.q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, err
	}

	return total, nil
}

// DeleteDraftsBefore removes stale draft batches older than the cutoff.
// Maintenance path, runs across tenants under an audited bypass.
func (r *BillingStore) DeleteDraftsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := requireBypass(ctx); err != nil {
		return 0, err
	}

	query, args, err := psql.Delete("billing_batches").
		Where(sq.Eq{"status": objects.BillingBatchStatusDraft}).
		Where(sq.Lt{"created_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, err
	}

	tag, err := r.store.q.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}
