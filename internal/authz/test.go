package authz

import (
	"context"
)

// NewTestContext creates context with Test principal (only for test environment).
func NewTestContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, principalKey{}, Principal{Type: PrincipalTypeTest})
}

// WithTestBypass creates context with Test principal and tenant-scope bypass.
// Used by store tests that need cross-tenant fixtures.
func WithTestBypass(ctx context.Context) context.Context {
	bypassCtx, _ := WithBypassTenantScope(NewTestContext(ctx), "test")
	return bypassCtx
}
