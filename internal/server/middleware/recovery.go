package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/fulexo/platform/internal/errs"
	"github.com/fulexo/platform/internal/log"
)

// Recovery converts panics into the standard internal error envelope.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error(c.Request.Context(), "panic recovered",
					log.Any("panic", r),
					log.String("stack", string(debug.Stack())),
				)

				AbortWithError(c, errs.Internal(fmt.Errorf("panic: %v", r)))
			}
		}()

		c.Next()
	}
}
