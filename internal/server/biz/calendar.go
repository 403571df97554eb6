package biz

import (
	"context"
	"time"

	"go.uber.org/fx"

	"github.com/fulexo/platform/internal/errs"
	"github.com/fulexo/platform/internal/objects"
	"github.com/fulexo/platform/internal/store"
)

type CalendarServiceParams struct {
	fx.In

	Store *store.Store
}

func NewCalendarService(params CalendarServiceParams) *CalendarService {
	return &CalendarService{
		AbstractService: &AbstractService{store: params.Store},
	}
}

type CalendarService struct {
	*AbstractService
}

type CalendarEventInput struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"startsAt" binding:"required"`
	EndsAt      time.Time `json:"endsAt" binding:"required"`
	AllDay      bool      `json:"allDay"`
}

func (i CalendarEventInput) validate() error {
	if !i.EndsAt.After(i.StartsAt) {
		return errs.Validation("Event end must be after start", nil)
	}

	return nil
}

func (s *CalendarService) CreateEvent(ctx context.Context, input CalendarEventInput) (*objects.CalendarEvent, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	event := &objects.CalendarEvent{
		Title:       input.Title,
		Description: input.Description,
		StartsAt:    input.StartsAt.UTC(),
		EndsAt:      input.EndsAt.UTC(),
		AllDay:      input.AllDay,
	}

	if err := s.store.Calendar().Create(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

func (s *CalendarService) GetEvent(ctx context.Context, id string) (*objects.CalendarEvent, error) {
	event, err := s.store.Calendar().GetByID(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, errs.NotFound("Calendar event", id)
		}

		return nil, err
	}

	return event, nil
}

// ListEvents returns the tenant's events overlapping [from, to).
func (s *CalendarService) ListEvents(ctx context.Context, from, to time.Time) ([]*objects.CalendarEvent, error) {
	if !to.After(from) {
		return nil, errs.Validation("Range end must be after start", nil)
	}

	return s.store.Calendar().ListRange(ctx, from, to)
}

func (s *CalendarService) UpdateEvent(ctx context.Context, id string, input CalendarEventInput) (*objects.CalendarEvent, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	event.Title = input.Title
	event.Description = input.Description
	event.StartsAt = input.StartsAt.UTC()
	event.EndsAt = input.EndsAt.UTC()
	event.AllDay = input.AllDay

	if err := s.store.Calendar().Update(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

func (s *CalendarService) DeleteEvent(ctx context.Context, id string) error {
	if err := s.store.Calendar().Delete(ctx, id); err != nil {
		if store.IsNotFound(err) {
			return errs.NotFound("Calendar event", id)
		}

		return err
	}

	return nil
}
