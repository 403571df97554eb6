package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/fulexo/platform/internal/authz"
	"github.com/fulexo/platform/internal/contexts"
	"github.com/fulexo/platform/internal/log"
	"github.com/fulexo/platform/internal/objects"
)

// TokenAuthenticator resolves a session token to its user.
type TokenAuthenticator interface {
	AuthenticateToken(ctx context.Context, token string) (*objects.User, error)
}

// WithAuthContext resolves the session token into an ambient user, tenant
// and principal. It never aborts: requests without a valid token continue
// as anonymous and the route guard decides whether that is acceptable.
func WithAuthContext(auth TokenAuthenticator, cfg TokenConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		token, ok := ExtractToken(c.Request, cfg)
		if !ok {
			c.Request = c.Request.WithContext(authz.NewAnonymousContext(ctx))
			c.Next()

			return
		}

		user, err := auth.AuthenticateToken(ctx, token)
		if err != nil {
			log.Debug(ctx, "token rejected", log.Cause(err))

			c.Request = c.Request.WithContext(authz.NewAnonymousContext(ctx))
			c.Next()

			return
		}

		ctx = contexts.WithUser(ctx, user)
		ctx = contexts.WithTenantID(ctx, user.TenantID)
		ctx = authz.NewUserContext(ctx, user)

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireAuth enforces the route's declared requirement. Anonymous
// requests get 401, authenticated requests lacking the role get 403.
func RequireAuth(req authz.Requirement) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authz.Authorize(c.Request.Context(), req); err != nil {
			AbortWithError(c, err)
			return
		}

		c.Next()
	}
}
