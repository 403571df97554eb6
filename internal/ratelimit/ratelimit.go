// Package ratelimit bounds the request rate per identity within a fixed
// window, backed by a shared redis counter store.
//
// The window is fixed, not sliding: the counter's expiry is set only when
// the key is first created, so the window does not reset on subsequent
// requests. When the counter store is unreachable the gate fails open with
// a logged warning - availability outweighs strict rate enforcement here.
package ratelimit

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/fulexo/platform/internal/contexts"
	"github.com/fulexo/platform/internal/errs"
	"github.com/fulexo/platform/internal/log"
)

// Config is the statically declared limit for a route.
type Config struct {
	// Limit is the maximum admitted count per window. Zero disables the gate.
	Limit int `conf:"limit" yaml:"limit" json:"limit"`
	// TTL is the window length.
	TTL time.Duration `conf:"ttl" yaml:"ttl" json:"ttl"`
}

// CounterStore atomically increments a counter, setting its expiry only
// when the key is created by this increment.
type CounterStore interface {
	Increment(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// Gate admits or rejects requests per RateKey.
type Gate struct {
	store CounterStore
}

func NewGate(store CounterStore) *Gate {
	return &Gate{store: store}
}

// Key derives the rate key from the ambient context: identity based when a
// user is bound, network-address based otherwise, always combined with the
// request method and path.
func Key(ctx context.Context) string {
	meta, _ := contexts.GetRequestMeta(ctx)

	subject := "ip:" + meta.ClientIP
	if user, ok := contexts.GetUser(ctx); ok {
		subject = "user:" + user.ID
	}

	return fmt.Sprintf("%s:%s:%s", subject, meta.Method, meta.Path)
}

// Check increments the counter for the ambient identity and admits or
// rejects the request. The boundary is inclusive: a post-increment count
// equal to the limit is still admitted, only strictly exceeding rejects.
func (g *Gate) Check(ctx context.Context, cfg Config) error {
	if cfg.Limit <= 0 {
		return nil
	}

	key := Key(ctx)

	current, err := g.store.Increment(ctx, key, cfg.TTL)
	if err != nil {
		// Fail open: rate enforcement is shed when the counter store is
		// down, the request itself still proceeds.
		log.Warn(ctx, "rate gate: counter store unreachable, failing open",
			log.String("key", key),
			log.Cause(err),
		)

		return nil
	}

	if current > int64(cfg.Limit) {
		retryAfter := int(math.Ceil(cfg.TTL.Seconds()))

		meta, _ := contexts.GetRequestMeta(ctx)
		log.Warn(ctx, "rate limit exceeded",
			log.String("key", key),
			log.String("client_ip", meta.ClientIP),
			log.String("user_agent", meta.UserAgent),
			log.Int64("current", current),
			log.Int("limit", cfg.Limit),
			log.Duration("ttl", cfg.TTL),
		)

		return errs.RateLimit(retryAfter)
	}

	return nil
}
