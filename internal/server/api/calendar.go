package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/fulexo/platform/internal/errs"
	"github.com/fulexo/platform/internal/server/biz"
)

type CalendarHandlersParams struct {
	fx.In

	CalendarService *biz.CalendarService
}

func NewCalendarHandlers(params CalendarHandlersParams) *CalendarHandlers {
	return &CalendarHandlers{CalendarService: params.CalendarService}
}

type CalendarHandlers struct {
	CalendarService *biz.CalendarService
}

func (h *CalendarHandlers) Create(c *gin.Context) {
	var input biz.CalendarEventInput
	if !BindJSON(c, &input) {
		return
	}

	event, err := h.CalendarService.CreateEvent(c.Request.Context(), input)
	if err != nil {
		Error(c, err)
		return
	}

	Created(c, event, "Event created")
}

func (h *CalendarHandlers) Get(c *gin.Context) {
	event, err := h.CalendarService.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		Error(c, err)
		return
	}

	OK(c, event, "")
}

type listEventsQuery struct {
	From time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To   time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}

func (h *CalendarHandlers) List(c *gin.Context) {
	var query listEventsQuery
	if !BindQuery(c, &query) {
		return
	}

	if query.From.IsZero() || query.To.IsZero() {
		Error(c, errs.Validation("from and to are required", nil))
		return
	}

	events, err := h.CalendarService.ListEvents(c.Request.Context(), query.From, query.To)
	if err != nil {
		Error(c, err)
		return
	}

	OK(c, events, "")
}

func (h *CalendarHandlers) Update(c *gin.Context) {
	var input biz.CalendarEventInput
	if !BindJSON(c, &input) {
		return
	}

	event, err := h.CalendarService.UpdateEvent(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		Error(c, err)
		return
	}

	OK(c, event, "Event updated")
}

func (h *CalendarHandlers) Delete(c *gin.Context) {
	if err := h.CalendarService.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
		Error(c, err)
		return
	}

	OK(c, nil, "Event deleted")
}
