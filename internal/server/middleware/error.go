package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fulexo/platform/internal/errs"
	"github.com/fulexo/platform/internal/objects"
)

// NewErrorResponse maps any error to the standard error envelope. Unknown
// errors collapse to an opaque internal error so internals never leak.
func NewErrorResponse(c *gin.Context, err error) objects.ErrorResponse {
	e := errs.AsError(err)

	message := e.Message
	if e.Kind == errs.KindInternal {
		message = "Internal server error"
	}

	return objects.ErrorResponse{
		Success:    false,
		Error:      e.Kind.Code(),
		Message:    message,
		StatusCode: e.Kind.Status(),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Path:       c.Request.URL.Path,
		Details:    e.Details,
		RetryAfter: e.RetryAfter,
	}
}

// AbortWithError aborts the request with the error envelope and records
// the error on the gin context for access logging.
func AbortWithError(c *gin.Context, err error) {
	_ = c.Error(err)

	resp := NewErrorResponse(c, err)

	c.AbortWithStatusJSON(resp.StatusCode, resp)
}
