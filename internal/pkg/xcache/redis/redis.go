// Package redis implements a typed gocache store on go-redis, with JSON
// encoding of values at rest.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	lib_store "github.com/eko/gocache/lib/v4/store"
	redis "github.com/redis/go-redis/v9"
)

const storeType = "redis"

// tagKey is the key pattern used to track tag membership sets.
const tagKey = "xcache_tag_%s"

// Store is a type-safe redis store for cache values of type T.
type Store[T any] struct {
	client  redis.UniversalClient
	options *lib_store.Options
}

func NewStore[T any](client redis.UniversalClient, options ...lib_store.Option) *Store[T] {
	return &Store[T]{
		client:  client,
		options: lib_store.ApplyOptions(options...),
	}
}

func (s *Store[T]) Get(ctx context.Context, key any) (any, error) {
	keyString, ok := key.(string)
	if !ok {
		return nil, fmt.Errorf("expected string key, got %T", key)
	}

	raw, err := s.client.Get(ctx, keyString).Result()
	if errors.Is(err, redis.Nil) {
		return nil, lib_store.NotFoundWithCause(err)
	}

	if err != nil {
		return nil, err
	}

	var result T
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *Store[T]) GetWithTTL(ctx context.Context, key any) (any, time.Duration, error) {
	keyString, ok := key.(string)
	if !ok {
		return nil, 0, fmt.Errorf("expected string key, got %T", key)
	}

	raw, err := s.client.Get(ctx, keyString).Result()
	if errors.Is(err, redis.Nil) {
		return nil, 0, lib_store.NotFoundWithCause(err)
	}

	if err != nil {
		return nil, 0, err
	}

	ttl, err := s.client.TTL(ctx, keyString).Result()
	if err != nil {
		return nil, 0, err
	}

	var result T
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, 0, err
	}

	return result, ttl, nil
}

func (s *Store[T]) Set(ctx context.Context, key any, value any, options ...lib_store.Option) error {
	opts := lib_store.ApplyOptionsWithDefault(s.options, options...)

	keyString, ok := key.(string)
	if !ok {
		return fmt.Errorf("expected string key, got %T", key)
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, keyString, raw, opts.Expiration).Err(); err != nil {
		return err
	}

	if tags := opts.Tags; len(tags) > 0 {
		s.setTags(ctx, keyString, tags)
	}

	return nil
}

func (s *Store[T]) setTags(ctx context.Context, key string, tags []string) {
	for _, tag := range tags {
		tagSet := fmt.Sprintf(tagKey, tag)
		s.client.SAdd(ctx, tagSet, key)
		s.client.Expire(ctx, tagSet, 720*time.Hour)
	}
}

func (s *Store[T]) Delete(ctx context.Context, key any) error {
	keyString, ok := key.(string)
	if !ok {
		return fmt.Errorf("expected string key, got %T", key)
	}

	return s.client.Del(ctx, keyString).Err()
}

func (s *Store[T]) Invalidate(ctx context.Context, options ...lib_store.InvalidateOption) error {
	opts := lib_store.ApplyInvalidateOptions(options...)

	for _, tag := range opts.Tags {
		tagSet := fmt.Sprintf(tagKey, tag)

		keys, err := s.client.SMembers(ctx, tagSet).Result()
		if err != nil {
			continue
		}

		for _, key := range keys {
			_ = s.Delete(ctx, key)
		}

		_ = s.client.Del(ctx, tagSet).Err()
	}

	return nil
}

func (s *Store[T]) Clear(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

func (s *Store[T]) GetType() string {
	return storeType
}
