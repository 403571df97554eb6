package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/fulexo/platform/internal/contexts"
	"github.com/fulexo/platform/internal/tracing"
)

// WithLoggingTracing saves the trace ID, request ID and request metadata
// to the request context, so later logs and the rate gate can read them.
func WithLoggingTracing(config tracing.Config) gin.HandlerFunc {
	traceHeader := config.TraceHeader
	if traceHeader == "" {
		traceHeader = "FX-Trace-Id"
	}

	requestHeader := config.RequestHeader
	if requestHeader == "" {
		requestHeader = "FX-Request-Id"
	}

	return func(c *gin.Context) {
		// Honour an upstream trace ID so a request can be followed
		// across services.
		traceID := c.GetHeader(traceHeader)
		if traceID == "" {
			traceID = tracing.GenerateTraceID()
		}

		requestID := tracing.GenerateRequestID()
		c.Header(requestHeader, requestID)

		ctx := tracing.WithTraceID(c.Request.Context(), traceID)
		ctx = tracing.WithRequestID(ctx, requestID)
		ctx = tracing.WithOperationName(ctx, fmt.Sprintf("%s %s", c.Request.Method, c.FullPath()))

		ctx = contexts.WithRequestMeta(ctx, contexts.RequestMeta{
			Method:    c.Request.Method,
			Path:      c.FullPath(),
			ClientIP:  c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		})

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
