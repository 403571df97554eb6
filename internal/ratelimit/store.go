package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// incrementScript increments the counter and sets the window expiry only on
// key creation, so the window is fixed rather than reset per request. The
// two steps run as one script to avoid lost updates and orphaned
// never-expiring counters under concurrent increments.
var incrementScript = redis.NewScript(`
local current = redis.call('INCR', KEYS[1])
if current == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return current
`)

// RedisStore is the shared counter store backed by redis.
type RedisStore struct {
	rdb redis.UniversalClient
}

func NewRedisStore(rdb redis.UniversalClient) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Increment(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	return incrementScript.Run(ctx, s.rdb, []string{"ratelimit:" + key}, ttl.Milliseconds()).Int64()
}
