package log

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type hookCtxKey struct{}

func TestHookFunc(t *testing.T) {
	hook := HookFunc(func(ctx context.Context, msg string, fields ...Field) []Field {
		if ctx == nil {
			return fields
		}

		if v, ok := ctx.Value(hookCtxKey{}).(string); ok {
			fields = append(fields, String("tenant_id", v))
		}

		return fields
	})

	t.Run("with value in context", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), hookCtxKey{}, "t1")
		fields := hook.Apply(ctx, "test message")
		assert.Len(t, fields, 1)
		assert.Equal(t, "tenant_id", fields[0].Key)
		assert.Equal(t, "t1", fields[0].String)
	})

	t.Run("without value in context", func(t *testing.T) {
		fields := hook.Apply(context.Background(), "test message")
		assert.Len(t, fields, 0)
	})

	t.Run("with nil context", func(t *testing.T) {
		fields := hook.Apply(nil, "test message")
		assert.Len(t, fields, 0)
	})

	t.Run("preserves existing fields", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), hookCtxKey{}, "t1")
		fields := hook.Apply(ctx, "test message", Int("status", 200))
		assert.Len(t, fields, 2)
		assert.Equal(t, "status", fields[0].Key)
	})
}

func TestLoggerHooks(t *testing.T) {
	logger := New(Config{Level: "debug"})

	var applied int

	logger.AddHook(HookFunc(func(ctx context.Context, msg string, fields ...Field) []Field {
		applied++
		return fields
	}))

	logger.Debug(context.Background(), "one")
	logger.Info(context.Background(), "two")

	assert.Equal(t, 2, applied)
}

func TestLoggerLevel(t *testing.T) {
	logger := New(Config{Level: "warn"})

	var applied int

	logger.AddHook(HookFunc(func(ctx context.Context, msg string, fields ...Field) []Field {
		applied++
		return fields
	}))

	logger.Debug(context.Background(), "skipped")
	logger.Info(context.Background(), "skipped")
	logger.Error(context.Background(), "logged")

	assert.Equal(t, 1, applied)
}
