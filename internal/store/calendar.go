package store

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fulexo/platform/internal/objects"
)

var calendarColumns = []string{
	"id", "tenant_id", "title", "description", "starts_at", "ends_at", "all_day",
	"created_at", "updated_at",
}

type CalendarStore struct {
	store *Store
}

func scanCalendarEvent(row pgx.Row) (*objects.CalendarEvent, error) {
	var e objects.CalendarEvent

	err := row.Scan(
		&e.ID, &e.TenantID, &e.Title, &e.Description, &e.StartsAt, &e.EndsAt,
		&e.AllDay, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &e, nil
}

func (r *CalendarStore) Create(ctx context.Context, event *objects.CalendarEvent) error {
	tenantID, err := stampTenant(ctx, event.TenantID)
	if err != nil {
		return err
	}

	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	event.TenantID = tenantID

	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now

	query, args, err := psql.Insert("calendar_events").
		Columns(calendarColumns...).
		Values(event.ID, event.TenantID, event.Title, event.Description, event.StartsAt,
			event.EndsAt, event.AllDay, event.CreatedAt, event.UpdatedAt).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.store.q.Exec(ctx, query, args...)

	return err
}

func (r *CalendarStore) GetByID(ctx context.Context, id string) (*objects.CalendarEvent, error) {
	scope, err := scopeFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := scope.scopeSelect(
		psql.Select(calendarColumns...).From("calendar_events").Where(sq.Eq{"id": id}),
	).ToSql()
	if err != nil {
		return nil, err
	}

	return scanCalendarEvent(r.store.q.QueryRow(ctx, query, args...))
}

// ListRange returns events overlapping the [from, to) window.
func (r *CalendarStore) ListRange(ctx context.Context, from, to time.Time) ([]*objects.CalendarEvent, error) {
	scope, err := scopeFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := scope.scopeSelect(
		psql.Select(calendarColumns...).From("calendar_events").
			Where(sq.Lt{"starts_at": to}).
			Where(sq.Gt{"ends_at": from}),
	).
		OrderBy("starts_at ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.store.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*objects.CalendarEvent

	for rows.Next() {
		e, err := scanCalendarEvent(rows)
		if err != nil {
			return nil, err
		}

		events = append(events, e)
	}

	return events, rows.Err()
}

func (r *CalendarStore) Update(ctx context.Context, event *objects.CalendarEvent) error {
	scope, err := scopeFromContext(ctx)
	if err != nil {
		return err
	}

	event.UpdatedAt = time.Now().UTC()

	query, args, err := scope.scopeUpdate(
		psql.Update("calendar_events").
			Set("title", event.Title).
			Set("description", event.Description).
			Set("starts_at", event.StartsAt).
			Set("ends_at", event.EndsAt).
			Set("all_day", event.AllDay).
			Set("updated_at", event.UpdatedAt).
			Where(sq.Eq{"id": event.ID}),
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

func (r *CalendarStore) Delete(ctx context.Context, id string) error {
	scope, err := scopeFromContext(ctx)
	if err != nil {
		return err
	}

	query, args, err := scope.scopeDelete(
		psql.Delete("calendar_events").Where(sq.Eq{"id": id}),
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
