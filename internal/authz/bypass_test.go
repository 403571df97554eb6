package authz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulexo/platform/internal/objects"
)

func TestWithBypassTenantScopeRequiresSystem(t *testing.T) {
	// No principal at all.
	_, err := WithBypassTenantScope(t.Context(), "test-reason")
	assert.Error(t, err)

	// User principals cannot bypass.
	userCtx := NewUserContext(t.Context(), testUser("u1", "t1", objects.RoleAdmin))
	_, err = WithBypassTenantScope(userCtx, "test-reason")
	assert.Error(t, err)

	// System principals can.
	bypassCtx, err := WithBypassTenantScope(NewSystemContext(t.Context()), "test-reason")
	require.NoError(t, err)
	assert.True(t, IsBypassActive(bypassCtx))

	info, ok := GetBypassInfo(bypassCtx)
	require.True(t, ok)
	assert.Equal(t, "test-reason", info.Reason)
}

func TestRunWithBypassScopesTheBypass(t *testing.T) {
	ctx := NewSystemContext(t.Context())

	var inner context.Context

	_, err := RunWithBypass(ctx, "audit-cleanup", func(ctx context.Context) (struct{}, error) {
		inner = ctx
		return struct{}{}, nil
	})
	require.NoError(t, err)

	assert.True(t, IsBypassActive(inner))
	// The bypass never escapes the closure.
	assert.False(t, IsBypassActive(ctx))
}

func TestRunWithBypassRejectsUserPrincipal(t *testing.T) {
	ctx := NewUserContext(t.Context(), testUser("u1", "t1", objects.RoleCustomer))

	called := false

	_, err := RunWithBypass(ctx, "test-reason", func(ctx context.Context) (struct{}, error) {
		called = true
		return struct{}{}, nil
	})

	assert.Error(t, err)
	assert.False(t, called)
}

func TestRunWithSystemBypass(t *testing.T) {
	got, err := RunWithSystemBypass(t.Context(), "auth-lookup", func(ctx context.Context) (string, error) {
		if !IsBypassActive(ctx) {
			t.Error("bypass should be active inside RunWithSystemBypass")
		}

		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

func TestBypassAuditLogger(t *testing.T) {
	var recorded []string

	SetAuditLogger(func(ctx context.Context, record bypassAuditRecord) {
		recorded = append(recorded, record.Reason)
	})

	t.Cleanup(func() { SetAuditLogger(nil) })

	_, _ = RunWithSystemBypass(t.Context(), "billing-export", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, nil
	})

	require.Len(t, recorded, 1)
	assert.Equal(t, "billing-export", recorded[0])
}
