package xcache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cached struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryWithOptions[cached](time.Minute, time.Minute)

	require.NoError(t, cache.Set(ctx, "k", cached{Name: "a", Count: 2}))

	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, cached{Name: "a", Count: 2}, got)

	require.NoError(t, cache.Delete(ctx, "k"))

	_, err = cache.Get(ctx, "k")
	assert.Error(t, err)
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cache := NewRedis[cached](client, WithExpiration(time.Minute))

	require.NoError(t, cache.Set(ctx, "k", cached{Name: "b", Count: 7}))

	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, cached{Name: "b", Count: 7}, got)
}

func TestNewFromConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("empty mode is noop", func(t *testing.T) {
		cache := NewFromConfig[string](Config{}, nil)

		require.NoError(t, cache.Set(ctx, "k", "v"))

		_, err := cache.Get(ctx, "k")
		assert.Error(t, err)
	})

	t.Run("memory mode", func(t *testing.T) {
		cache := NewFromConfig[string](Config{Mode: ModeMemory}, nil)

		require.NoError(t, cache.Set(ctx, "k", "v"))

		got, err := cache.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v", got)
	})

	t.Run("redis mode without client degrades to memory", func(t *testing.T) {
		cache := NewFromConfig[string](Config{Mode: ModeRedis}, nil)

		require.NoError(t, cache.Set(ctx, "k", "v"))

		got, err := cache.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v", got)
	})

	t.Run("two-level mode", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

		cache := NewFromConfig[string](Config{Mode: ModeTwoLevel}, client)

		require.NoError(t, cache.Set(ctx, "k", "v"))

		got, err := cache.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v", got)
	})
}
