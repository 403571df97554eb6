package contexts

import (
	"context"
	"sync"
	"testing"

	"github.com/fulexo/platform/internal/objects"
)

func TestWithTenantID(t *testing.T) {
	ctx := t.Context()

	newCtx := WithTenantID(ctx, "t1")
	if newCtx == ctx {
		t.Error("WithTenantID should return a new context")
	}

	tenantID, ok := GetTenantID(newCtx)
	if !ok {
		t.Error("GetTenantID should return true for bound tenant")
	}

	if tenantID != "t1" {
		t.Errorf("expected tenant t1, got %s", tenantID)
	}
}

func TestGetTenantIDEmpty(t *testing.T) {
	tenantID, ok := GetTenantID(t.Context())
	if ok {
		t.Error("GetTenantID should return false for empty context")
	}

	if tenantID != "" {
		t.Error("GetTenantID should return empty string for empty context")
	}
}

func TestWithUser(t *testing.T) {
	ctx := t.Context()
	user := &objects.User{
		ID:       "u1",
		TenantID: "t1",
		Email:    "admin@example.com",
		Role:     objects.RoleAdmin,
	}

	newCtx := WithUser(ctx, user)

	retrieved, ok := GetUser(newCtx)
	if !ok {
		t.Error("GetUser should return true for bound user")
	}

	if retrieved.ID != user.ID {
		t.Errorf("expected ID %s, got %s", user.ID, retrieved.ID)
	}

	role, ok := GetRole(newCtx)
	if !ok || role != objects.RoleAdmin {
		t.Errorf("expected role ADMIN, got %s", role)
	}
}

func TestGetUserEmpty(t *testing.T) {
	user, ok := GetUser(t.Context())
	if ok {
		t.Error("GetUser should return false for empty context")
	}

	if user != nil {
		t.Error("GetUser should return nil for empty context")
	}

	if _, ok := GetRole(t.Context()); ok {
		t.Error("GetRole should return false for empty context")
	}
}

// Two concurrently bound contexts never observe each other's tenant, even
// when derived from the same parent.
func TestTenantIsolationAcrossGoroutines(t *testing.T) {
	parent := t.Context()

	ctxA := WithTenantID(parent, "tenant-a")
	ctxB := WithTenantID(parent, "tenant-b")

	var wg sync.WaitGroup

	for range 100 {
		wg.Add(2)

		go func() {
			defer wg.Done()

			if id, _ := GetTenantID(ctxA); id != "tenant-a" {
				t.Errorf("context A observed tenant %q", id)
			}
		}()

		go func() {
			defer wg.Done()

			if id, _ := GetTenantID(ctxB); id != "tenant-b" {
				t.Errorf("context B observed tenant %q", id)
			}
		}()
	}

	wg.Wait()

	// The parent stays unbound after both children complete.
	if _, ok := GetTenantID(parent); ok {
		t.Error("parent context should not observe any tenant")
	}
}

func TestRequestMeta(t *testing.T) {
	meta := RequestMeta{
		Method:    "POST",
		Path:      "/api/orders",
		ClientIP:  "203.0.113.7",
		UserAgent: "curl/8.0",
	}

	ctx := WithRequestMeta(t.Context(), meta)

	got, ok := GetRequestMeta(ctx)
	if !ok {
		t.Fatal("GetRequestMeta should return true after binding")
	}

	if got != meta {
		t.Errorf("expected %+v, got %+v", meta, got)
	}

	if _, ok := GetRequestMeta(t.Context()); ok {
		t.Error("GetRequestMeta should return false for empty context")
	}
}

func TestAddError(t *testing.T) {
	ctx := WithTenantID(t.Context(), "t1")

	AddError(ctx, context.DeadlineExceeded)
	AddError(ctx, context.Canceled)

	errs := GetErrors(ctx)
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(errs))
	}
}

func TestTraceAndRequestID(t *testing.T) {
	ctx := WithTraceID(t.Context(), "fl-trace")
	ctx = WithRequestID(ctx, "fl-req")
	ctx = WithOperationName(ctx, "GET /health")

	if id, ok := GetTraceID(ctx); !ok || id != "fl-trace" {
		t.Errorf("unexpected trace id %q", id)
	}

	if id, ok := GetRequestID(ctx); !ok || id != "fl-req" {
		t.Errorf("unexpected request id %q", id)
	}

	if name, ok := GetOperationName(ctx); !ok || name != "GET /health" {
		t.Errorf("unexpected operation name %q", name)
	}
}
