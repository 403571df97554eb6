package authz

import (
	"context"
	"fmt"

	"github.com/fulexo/platform/internal/objects"
)

// PrincipalType defines authorization principal types.
type PrincipalType int

const (
	// PrincipalTypeAnonymous unauthenticated principal (public routes).
	PrincipalTypeAnonymous PrincipalType = iota
	// PrincipalTypeSystem system principal (background jobs, internal operations).
	PrincipalTypeSystem
	// PrincipalTypeUser user principal.
	PrincipalTypeUser
	// PrincipalTypeTest test principal (only for test environment).
	PrincipalTypeTest
)

// String returns string representation of PrincipalType.
func (p PrincipalType) String() string {
	switch p {
	case PrincipalTypeAnonymous:
		return "anonymous"
	case PrincipalTypeSystem:
		return "system"
	case PrincipalTypeUser:
		return "user"
	case PrincipalTypeTest:
		return "test"
	default:
		return "unknown"
	}
}

// Principal represents the authorization identity of a request.
// Each request can only have one Principal, guaranteed by WithPrincipal's set-once semantics.
type Principal struct {
	Type     PrincipalType
	UserID   *string
	TenantID *string
	Role     objects.Role
}

// IsSystem checks if it is a system principal.
func (p Principal) IsSystem() bool {
	return p.Type == PrincipalTypeSystem
}

// IsUser checks if it is a user principal.
func (p Principal) IsUser() bool {
	return p.Type == PrincipalTypeUser
}

// IsAnonymous checks if it is an anonymous principal.
func (p Principal) IsAnonymous() bool {
	return p.Type == PrincipalTypeAnonymous
}

// IsTest checks if it is a test principal.
func (p Principal) IsTest() bool {
	return p.Type == PrincipalTypeTest
}

// String returns string representation of Principal (for audit logs).
func (p Principal) String() string {
	switch p.Type {
	case PrincipalTypeAnonymous:
		return "anonymous"
	case PrincipalTypeSystem:
		return "system"
	case PrincipalTypeUser:
		if p.UserID != nil {
			return fmt.Sprintf("user:%s", *p.UserID)
		}

		return "user:unknown"
	case PrincipalTypeTest:
		return "test"
	default:
		return "unknown"
	}
}

// principalKey is an unexported key type to prevent external forgery.
type principalKey struct{}

// WithPrincipal sets Principal, returns error if a different one already exists.
// Ensures each context can only set Principal once, preventing principal mixing.
func WithPrincipal(ctx context.Context, p Principal) (context.Context, error) {
	if existing, ok := GetPrincipal(ctx); ok {
		if !principalEqual(existing, p) {
			return ctx, fmt.Errorf("authz: principal conflict: existing=%s, new=%s", existing.String(), p.String())
		}

		return ctx, nil // Same principal, idempotent
	}

	return context.WithValue(ctx, principalKey{}, p), nil
}

// principalEqual compares if two Principals are equal.
func principalEqual(a, b Principal) bool {
	if a.Type != b.Type || a.Role != b.Role {
		return false
	}

	if !strPtrEqual(a.UserID, b.UserID) {
		return false
	}

	return strPtrEqual(a.TenantID, b.TenantID)
}

func strPtrEqual(a, b *string) bool {
	if a == nil && b == nil {
		return true
	}

	if a == nil || b == nil {
		return false
	}

	return *a == *b
}

// GetPrincipal reads Principal.
func GetPrincipal(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// MustGetPrincipal reads Principal, panics if not exists (used in chains where principal is confirmed).
func MustGetPrincipal(ctx context.Context) Principal {
	p, ok := GetPrincipal(ctx)
	if !ok {
		panic("authz: no principal in context")
	}

	return p
}

// NewUserContext creates context with a User principal bound to its tenant.
func NewUserContext(ctx context.Context, user *objects.User) context.Context {
	userID := user.ID
	tenantID := user.TenantID

	return context.WithValue(ctx, principalKey{}, Principal{
		Type:     PrincipalTypeUser,
		UserID:   &userID,
		TenantID: &tenantID,
		Role:     user.Role,
	})
}

// NewAnonymousContext creates context with an Anonymous principal.
func NewAnonymousContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, principalKey{}, Principal{Type: PrincipalTypeAnonymous})
}

// RequirePrincipal checks if a principal exists, otherwise returns error.
func RequirePrincipal(ctx context.Context) error {
	_, ok := GetPrincipal(ctx)
	if !ok {
		return fmt.Errorf("authz: no principal in context")
	}

	return nil
}
