package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulexo/platform/internal/authz"
	"github.com/fulexo/platform/internal/contexts"
	"github.com/fulexo/platform/internal/errs"
	"github.com/fulexo/platform/internal/objects"
)

type fakeAuthenticator struct {
	users map[string]*objects.User
}

func (f *fakeAuthenticator) AuthenticateToken(ctx context.Context, token string) (*objects.User, error) {
	if u, ok := f.users[token]; ok {
		return u, nil
	}

	return nil, errs.ErrInvalidToken
}

func newAuthRouter(t *testing.T, req authz.Requirement) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	auth := &fakeAuthenticator{users: map[string]*objects.User{
		"admin-token": {
			ID:       "u-1",
			TenantID: "t-1",
			Email:    "admin@example.com",
			Role:     objects.RoleAdmin,
			Status:   objects.UserStatusActive,
		},
		"customer-token": {
			ID:       "u-2",
			TenantID: "t-2",
			Email:    "customer@example.com",
			Role:     objects.RoleCustomer,
			Status:   objects.UserStatusActive,
		},
	}}

	router := gin.New()
	router.Use(WithAuthContext(auth, DefaultTokenConfig))
	router.GET("/probe", RequireAuth(req), func(c *gin.Context) {
		tenantID, _ := contexts.GetTenantID(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"tenantId": tenantID})
	})

	return router
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) objects.ErrorResponse {
	t.Helper()

	var resp objects.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	return resp
}

func TestWithAuthContext(t *testing.T) {
	t.Run("no token on protected route is 401", func(t *testing.T) {
		router := newAuthRouter(t, authz.RequireAuthenticated)

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusUnauthorized, w.Code)

		resp := decodeError(t, w)
		assert.False(t, resp.Success)
		assert.Equal(t, "AUTHENTICATION_ERROR", resp.Error)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "/probe", resp.Path)
		assert.NotEmpty(t, resp.Timestamp)
	})

	t.Run("invalid token is 401, not 500", func(t *testing.T) {
		router := newAuthRouter(t, authz.RequireAuthenticated)

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer bogus")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "AUTHENTICATION_ERROR", decodeError(t, w).Error)
	})

	t.Run("wrong role is 403", func(t *testing.T) {
		router := newAuthRouter(t, authz.RequireAdmin)

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer customer-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "AUTHORIZATION_ERROR", decodeError(t, w).Error)
	})

	t.Run("valid token binds the user tenant", func(t *testing.T) {
		router := newAuthRouter(t, authz.RequireAdmin)

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer admin-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"tenantId":"t-1"`)
	})

	t.Run("cookie fallback", func(t *testing.T) {
		router := newAuthRouter(t, authz.RequireAuthenticated)

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.AddCookie(&http.Cookie{Name: "fulexo_token", Value: "customer-token"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"tenantId":"t-2"`)
	})

	t.Run("open route ignores missing token", func(t *testing.T) {
		router := newAuthRouter(t, authz.RequireNone)

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
