// Package contexts carries the per-request ambient state: the bound tenant,
// the authenticated user, request metadata and tracing identifiers.
//
// Values are held in a container stored under an unexported key, so two
// concurrently in-flight requests can never observe each other's state, and
// reading outside any bound scope yields zero values rather than stale data.
package contexts

import (
	"context"

	"github.com/fulexo/platform/internal/objects"
)

// WithTenantID binds the tenant identity for the remainder of the request.
func WithTenantID(ctx context.Context, tenantID string) context.Context {
	container := getContainer(ctx)
	container.TenantID = &tenantID

	return withContainer(ctx, container)
}

// GetTenantID retrieves the bound tenant, if any. Unauthenticated requests
// and platform-admin operations carry no tenant.
func GetTenantID(ctx context.Context) (string, bool) {
	container := getContainer(ctx)
	if container.TenantID != nil {
		return *container.TenantID, true
	}

	return "", false
}

// WithUser stores the authenticated user in the context.
func WithUser(ctx context.Context, user *objects.User) context.Context {
	container := getContainer(ctx)
	container.User = user

	return withContainer(ctx, container)
}

// GetUser retrieves the authenticated user from the context.
func GetUser(ctx context.Context) (*objects.User, bool) {
	container := getContainer(ctx)
	return container.User, container.User != nil
}

// GetRole retrieves the bound user's role.
func GetRole(ctx context.Context) (objects.Role, bool) {
	user, ok := GetUser(ctx)
	if !ok {
		return "", false
	}

	return user.Role, true
}

// WithTraceID stores the trace id in the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	container := getContainer(ctx)
	container.TraceID = &traceID

	return withContainer(ctx, container)
}

// GetTraceID retrieves the trace id from the context.
func GetTraceID(ctx context.Context) (string, bool) {
	container := getContainer(ctx)
	if container.TraceID != nil {
		return *container.TraceID, true
	}

	return "", false
}

// WithRequestID stores the request id in the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	container := getContainer(ctx)
	container.RequestID = &requestID

	return withContainer(ctx, container)
}

// GetRequestID retrieves the request id from the context.
func GetRequestID(ctx context.Context) (string, bool) {
	container := getContainer(ctx)
	if container.RequestID != nil {
		return *container.RequestID, true
	}

	return "", false
}

// WithOperationName stores the operation name in the context.
func WithOperationName(ctx context.Context, name string) context.Context {
	container := getContainer(ctx)
	container.OperationName = &name

	return withContainer(ctx, container)
}

// GetOperationName retrieves the operation name from the context.
func GetOperationName(ctx context.Context) (string, bool) {
	container := getContainer(ctx)
	if container.OperationName != nil {
		return *container.OperationName, true
	}

	return "", false
}

// AddError records an error for the access log boundary.
func AddError(ctx context.Context, err error) {
	container := getContainer(ctx)

	container.mu.Lock()
	container.Errors = append(container.Errors, err)
	container.mu.Unlock()
}

// GetErrors returns the errors recorded during the request.
func GetErrors(ctx context.Context) []error {
	container := getContainer(ctx)

	container.mu.RLock()
	defer container.mu.RUnlock()

	errs := make([]error, len(container.Errors))
	copy(errs, container.Errors)

	return errs
}
