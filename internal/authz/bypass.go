package authz

import (
	"context"
	"fmt"
	"time"

	"github.com/fulexo/platform/internal/log"
)

// bypassKey is an unexported key type to prevent external forgery.
type bypassKey struct{}

// bypassInfo stores bypass metadata.
type bypassInfo struct {
	Reason    string
	Timestamp time.Time
	Principal Principal
}

// WithBypassTenantScope creates a local cross-tenant bypass context.
// Only Principal=System or test principals are allowed to call.
// reason must be a stable audit identifier (e.g., "auth-lookup", "worker-sync").
func WithBypassTenantScope(ctx context.Context, reason string) (context.Context, error) {
	p, ok := GetPrincipal(ctx)
	if !ok {
		return nil, fmt.Errorf("authz: WithBypassTenantScope requires a principal in context")
	}

	if !p.IsSystem() && !p.IsTest() {
		return nil, fmt.Errorf("authz: WithBypassTenantScope requires system or test principal, got %s", p.String())
	}

	info := bypassInfo{
		Reason:    reason,
		Timestamp: time.Now(),
		Principal: p,
	}

	recordBypassAudit(ctx, info)

	return context.WithValue(ctx, bypassKey{}, info), nil
}

// RunWithBypass executes a cross-tenant operation within a closure,
// limiting the bypass scope. Recommended over WithBypassTenantScope to
// prevent the bypass context from spreading along the call chain.
//
// Example usage:
//
//	count, err := authz.RunWithBypass(ctx, "billing-tenant-count", func(ctx context.Context) (int64, error) {
//	    return store.Tenants().Count(ctx)
//	})
func RunWithBypass[T any](ctx context.Context, reason string, fn func(ctx context.Context) (T, error)) (T, error) {
	bypassCtx, err := WithBypassTenantScope(ctx, reason)
	if err != nil {
		var zero T
		return zero, err
	}

	return fn(bypassCtx)
}

// GetBypassInfo retrieves current bypass information.
// Used for audit and debugging.
func GetBypassInfo(ctx context.Context) (bypassInfo, bool) {
	info, ok := ctx.Value(bypassKey{}).(bypassInfo)
	return info, ok
}

// IsBypassActive checks if current context is in bypass state.
func IsBypassActive(ctx context.Context) bool {
	_, ok := ctx.Value(bypassKey{}).(bypassInfo)
	return ok
}

// bypassAuditRecord represents a bypass audit record.
type bypassAuditRecord struct {
	Timestamp   time.Time
	Principal   string
	Reason      string
	Operation   string
	Description string
}

// auditLogger is the bypass audit logger.
// Can be customized via SetAuditLogger.
var auditLogger func(ctx context.Context, record bypassAuditRecord)

// SetAuditLogger sets a custom audit logger.
// If not set, the default structured log output is used.
func SetAuditLogger(fn func(ctx context.Context, record bypassAuditRecord)) {
	auditLogger = fn
}

// recordBypassAudit records bypass audit log.
func recordBypassAudit(ctx context.Context, info bypassInfo) {
	record := bypassAuditRecord{
		Timestamp:   info.Timestamp,
		Principal:   info.Principal.String(),
		Reason:      info.Reason,
		Operation:   "bypass",
		Description: fmt.Sprintf("Tenant-scope bypass triggered: reason=%s, principal=%s", info.Reason, info.Principal.String()),
	}

	if auditLogger != nil {
		auditLogger(ctx, record)
	} else {
		log.Debug(ctx, "authz: tenant-scope bypass",
			log.String("principal", record.Principal),
			log.String("reason", record.Reason),
			log.String("operation", record.Operation),
		)
	}
}
