package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulexo/platform/internal/contexts"
	"github.com/fulexo/platform/internal/errs"
	"github.com/fulexo/platform/internal/objects"
)

func newTestGate(t *testing.T) (*Gate, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewGate(NewRedisStore(rdb)), mr
}

func anonCtx(t *testing.T, ip, method, path string) context.Context {
	t.Helper()

	return contexts.WithRequestMeta(t.Context(), contexts.RequestMeta{
		Method:   method,
		Path:     path,
		ClientIP: ip,
	})
}

func TestKeyDerivation(t *testing.T) {
	t.Run("unauthenticated uses network address", func(t *testing.T) {
		ctx := anonCtx(t, "203.0.113.7", "GET", "/api/orders")
		assert.Equal(t, "ip:203.0.113.7:GET:/api/orders", Key(ctx))
	})

	t.Run("authenticated uses user identity", func(t *testing.T) {
		ctx := anonCtx(t, "203.0.113.7", "POST", "/api/orders")
		ctx = contexts.WithUser(ctx, &objects.User{ID: "u1", TenantID: "t1", Role: objects.RoleCustomer})
		assert.Equal(t, "user:u1:POST:/api/orders", Key(ctx))
	})
}

// Five requests admitted at limit=5, the sixth rejected with retryAfter=60,
// and a request one window later admitted again.
func TestFixedWindowBoundary(t *testing.T) {
	gate, mr := newTestGate(t)
	cfg := Config{Limit: 5, TTL: 60 * time.Second}
	ctx := anonCtx(t, "203.0.113.7", "GET", "/api/orders")

	for i := 1; i <= 5; i++ {
		assert.NoError(t, gate.Check(ctx, cfg), "request %d should be admitted", i)
	}

	err := gate.Check(ctx, cfg)
	require.Error(t, err)
	assert.Equal(t, errs.KindRateLimit, errs.KindOf(err))

	var tagged *errs.Error
	require.True(t, errors.As(err, &tagged))
	assert.Equal(t, 60, tagged.RetryAfter)

	// After the window expires the counter is fresh.
	mr.FastForward(61 * time.Second)
	assert.NoError(t, gate.Check(ctx, cfg))
}

// The expiry is set only when the key is created: subsequent increments do
// not push the window forward.
func TestWindowIsFixedNotSliding(t *testing.T) {
	gate, mr := newTestGate(t)
	cfg := Config{Limit: 100, TTL: 60 * time.Second}
	ctx := anonCtx(t, "203.0.113.7", "GET", "/api/orders")

	require.NoError(t, gate.Check(ctx, cfg))

	ttlAfterFirst := mr.TTL("ratelimit:" + Key(ctx))

	mr.FastForward(30 * time.Second)
	require.NoError(t, gate.Check(ctx, cfg))

	ttlAfterSecond := mr.TTL("ratelimit:" + Key(ctx))
	assert.Less(t, ttlAfterSecond, ttlAfterFirst)
}

func TestSeparateKeysSeparateWindows(t *testing.T) {
	gate, _ := newTestGate(t)
	cfg := Config{Limit: 1, TTL: time.Minute}

	require.NoError(t, gate.Check(anonCtx(t, "203.0.113.7", "GET", "/api/orders"), cfg))
	require.Error(t, gate.Check(anonCtx(t, "203.0.113.7", "GET", "/api/orders"), cfg))

	// A different address, method or path does not share the counter.
	assert.NoError(t, gate.Check(anonCtx(t, "203.0.113.8", "GET", "/api/orders"), cfg))
	assert.NoError(t, gate.Check(anonCtx(t, "203.0.113.7", "POST", "/api/orders"), cfg))
	assert.NoError(t, gate.Check(anonCtx(t, "203.0.113.7", "GET", "/api/products"), cfg))
}

func TestAuthenticatedKeyedByUserNotAddress(t *testing.T) {
	gate, _ := newTestGate(t)
	cfg := Config{Limit: 1, TTL: time.Minute}

	user := &objects.User{ID: "u1", TenantID: "t1", Role: objects.RoleCustomer}

	ctxA := contexts.WithUser(anonCtx(t, "203.0.113.7", "GET", "/api/orders"), user)
	ctxB := contexts.WithUser(anonCtx(t, "198.51.100.9", "GET", "/api/orders"), user)

	require.NoError(t, gate.Check(ctxA, cfg))
	// Same user from another address shares the window.
	assert.Error(t, gate.Check(ctxB, cfg))
}

func TestZeroLimitDisablesGate(t *testing.T) {
	gate, _ := newTestGate(t)
	ctx := anonCtx(t, "203.0.113.7", "GET", "/health")

	for range 100 {
		assert.NoError(t, gate.Check(ctx, Config{}))
	}
}

// Counter store down: the gate fails open and the request proceeds.
func TestFailOpenOnStoreOutage(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	gate := NewGate(NewRedisStore(rdb))
	cfg := Config{Limit: 1, TTL: time.Minute}
	ctx := anonCtx(t, "203.0.113.7", "GET", "/api/orders")

	require.NoError(t, gate.Check(ctx, cfg))

	mr.Close()

	// Over the limit, but the store is gone: admitted anyway.
	assert.NoError(t, gate.Check(ctx, cfg))
	assert.NoError(t, gate.Check(ctx, cfg))
}
