package tracing

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fulexo/platform/internal/contexts"
	"github.com/fulexo/platform/internal/log"
)

func TestGenerateTraceID(t *testing.T) {
	id := GenerateTraceID()
	assert.True(t, strings.HasPrefix(id, "fl-"))
	assert.NotEqual(t, id, GenerateTraceID())
}

func TestGenerateRequestID(t *testing.T) {
	id := GenerateRequestID()
	assert.True(t, strings.HasPrefix(id, "flr-"))
}

func TestTraceFieldsHooks(t *testing.T) {
	hook := log.HookFunc(TraceFieldsHooks)

	t.Run("with trace ID", func(t *testing.T) {
		ctx := WithTraceID(context.Background(), "fl-test-trace-id")
		fields := hook.Apply(ctx, "test message")
		assert.Len(t, fields, 1)
		assert.Equal(t, "trace_id", fields[0].Key)
		assert.Equal(t, "fl-test-trace-id", fields[0].String)
	})

	t.Run("with operation name", func(t *testing.T) {
		ctx := WithOperationName(context.Background(), "test-operation-name")
		fields := hook.Apply(ctx, "test message")
		assert.Len(t, fields, 1)
		assert.Equal(t, "operation_name", fields[0].Key)
		assert.Equal(t, "test-operation-name", fields[0].String)
	})

	t.Run("with tenant bound", func(t *testing.T) {
		ctx := contexts.WithTenantID(context.Background(), "t1")
		fields := hook.Apply(ctx, "test message")
		assert.Len(t, fields, 1)
		assert.Equal(t, "tenant_id", fields[0].Key)
		assert.Equal(t, "t1", fields[0].String)
	})

	t.Run("with empty context", func(t *testing.T) {
		fields := hook.Apply(context.Background(), "test message")
		assert.Len(t, fields, 0)
	})

	t.Run("with nil context", func(t *testing.T) {
		fields := hook.Apply(nil, "test message")
		assert.Len(t, fields, 0)
	})
}
