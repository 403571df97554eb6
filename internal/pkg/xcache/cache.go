// Package xcache wraps eko/gocache behind typed constructors so services
// can depend on a single cache interface regardless of backend.
package xcache

import (
	"context"
	"time"

	"github.com/eko/gocache/lib/v4/store"
	redis "github.com/redis/go-redis/v9"

	cachelib "github.com/eko/gocache/lib/v4/cache"
	gocache_store "github.com/eko/gocache/store/go_cache/v4"
	gocache "github.com/patrickmn/go-cache"

	"github.com/fulexo/platform/internal/log"
	redis_store "github.com/fulexo/platform/internal/pkg/xcache/redis"
)

type Cache[T any] = cachelib.CacheInterface[T]

type SetterCache[T any] = cachelib.SetterCacheInterface[T]

// NewMemory creates an in-memory cache backed by patrickmn/go-cache.
func NewMemory[T any](client *gocache.Cache, options ...Option) SetterCache[T] {
	return cachelib.New[T](gocache_store.NewGoCache(client, options...))
}

// NewMemoryWithOptions builds the go-cache client for you.
func NewMemoryWithOptions[T any](defaultExpiration, cleanupInterval time.Duration, options ...Option) SetterCache[T] {
	return NewMemory[T](gocache.New(defaultExpiration, cleanupInterval), options...)
}

// NewRedis creates a redis-backed cache on an existing client.
func NewRedis[T any](client *redis.Client, options ...Option) SetterCache[T] {
	return cachelib.New[T](redis_store.NewStore[T](client, options...))
}

// NewTwoLevel chains a memory cache in front of a redis cache.
func NewTwoLevel[T any](memory, rds SetterCache[T]) Cache[T] {
	return cachelib.NewChain[T](memory, rds)
}

// NewFromConfig builds a typed cache from configuration. The redis client
// is injected; modes that need redis degrade to memory-only when client is
// nil so a missing redis never takes caching down wholesale.
func NewFromConfig[T any](cfg Config, client *redis.Client) Cache[T] {
	if cfg.Mode == "" || cfg.Mode == ModeDisabled {
		return NewNoop[T]()
	}

	memExpiration := defaultIfZero(cfg.Memory.Expiration, 5*time.Minute)
	memCleanup := defaultIfZero(cfg.Memory.CleanupInterval, 10*time.Minute)
	mem := NewMemoryWithOptions[T](memExpiration, memCleanup, store.WithExpiration(memExpiration))

	var rds SetterCache[T]

	if client != nil && cfg.Mode != ModeMemory {
		redisExpiration := defaultIfZero(cfg.RedisExpiration, 30*time.Minute)
		rds = NewRedis[T](client, store.WithExpiration(redisExpiration))
	}

	switch cfg.Mode {
	case ModeTwoLevel:
		if rds == nil {
			log.Warn(context.Background(), "two-level cache without redis, using memory only")
			return mem
		}

		return NewTwoLevel[T](mem, rds)
	case ModeRedis:
		if rds == nil {
			log.Warn(context.Background(), "redis cache without redis client, using memory only")
			return mem
		}

		return rds
	case ModeMemory:
		return mem
	default:
		log.Warn(context.Background(), "unknown cache mode, caching disabled", log.String("mode", cfg.Mode))
		return NewNoop[T]()
	}
}

func defaultIfZero(d, def time.Duration) time.Duration {
	if d == 0 {
		return def
	}

	return d
}
