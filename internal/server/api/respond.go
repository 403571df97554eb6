package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fulexo/platform/internal/errs"
	"github.com/fulexo/platform/internal/objects"
)

// OK writes the standard success envelope.
func OK(c *gin.Context, data any, message string) {
	respond(c, http.StatusOK, data, message)
}

// Created writes the standard success envelope with 201.
func Created(c *gin.Context, data any, message string) {
	respond(c, http.StatusCreated, data, message)
}

func respond(c *gin.Context, status int, data any, message string) {
	if message == "" {
		message = "Success"
	}

	c.JSON(status, objects.NewResponse(data, message, status, c.Request.URL.Path))
}

// Page writes the paginated success envelope.
func Page(c *gin.Context, data any, page objects.PageParams, total int64) {
	page = page.Normalize()
	c.JSON(http.StatusOK, objects.NewPaginatedResponse(
		data, page.Page, page.Limit, total, http.StatusOK, c.Request.URL.Path,
	))
}

// Error writes the standard error envelope for err and records it on the
// gin context for access logging.
func Error(c *gin.Context, err error) {
	_ = c.Error(err)

	e := errs.AsError(err)

	message := e.Message
	if e.Kind == errs.KindInternal {
		message = "Internal server error"
	}

	c.JSON(e.Kind.Status(), objects.ErrorResponse{
		Success:    false,
		Error:      e.Kind.Code(),
		Message:    message,
		StatusCode: e.Kind.Status(),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Path:       c.Request.URL.Path,
		Details:    e.Details,
		RetryAfter: e.RetryAfter,
	})
}

// BindJSON binds the request body, mapping failures to a validation
// error envelope. Returns false if the request was already answered.
func BindJSON(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		Error(c, errs.Validation("Invalid request format", map[string]any{"error": err.Error()}))
		return false
	}

	return true
}

// BindQuery binds query parameters the same way.
func BindQuery(c *gin.Context, out any) bool {
	if err := c.ShouldBindQuery(out); err != nil {
		Error(c, errs.Validation("Invalid query parameters", map[string]any{"error": err.Error()}))
		return false
	}

	return true
}
