package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulexo/platform/internal/objects"
	"github.com/fulexo/platform/internal/ratelimit"
	"github.com/fulexo/platform/internal/tracing"
)

func TestWithRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	gate := ratelimit.NewGate(ratelimit.NewRedisStore(client))

	router := gin.New()
	router.Use(WithLoggingTracing(tracing.Config{}))
	router.GET("/limited",
		WithRateLimit(gate, ratelimit.Config{Limit: 2, TTL: time.Minute}),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	get := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		return w
	}

	assert.Equal(t, http.StatusOK, get().Code)
	assert.Equal(t, http.StatusOK, get().Code)

	w := get()
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	var resp objects.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "RATE_LIMIT_ERROR", resp.Error)
	assert.Equal(t, 60, resp.RetryAfter)

	// Window expiry admits traffic again.
	mr.FastForward(61 * time.Second)
	assert.Equal(t, http.StatusOK, get().Code)
}
