package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulexo/platform/internal/objects"
)

func testUser(id, tenantID string, role objects.Role) *objects.User {
	return &objects.User{ID: id, TenantID: tenantID, Email: id + "@example.com", Role: role}
}

func TestWithPrincipalSetOnce(t *testing.T) {
	ctx := NewUserContext(t.Context(), testUser("u1", "t1", objects.RoleCustomer))

	p, ok := GetPrincipal(ctx)
	require.True(t, ok)
	assert.True(t, p.IsUser())
	assert.Equal(t, "user:u1", p.String())
	assert.Equal(t, "t1", *p.TenantID)

	// Same principal is idempotent.
	_, err := WithPrincipal(ctx, p)
	assert.NoError(t, err)

	// A different principal conflicts.
	other := Principal{Type: PrincipalTypeSystem}
	_, err = WithPrincipal(ctx, other)
	assert.Error(t, err)
}

func TestGetPrincipalEmpty(t *testing.T) {
	_, ok := GetPrincipal(t.Context())
	assert.False(t, ok)

	assert.Error(t, RequirePrincipal(t.Context()))

	assert.Panics(t, func() {
		MustGetPrincipal(t.Context())
	})
}

func TestPrincipalTypes(t *testing.T) {
	assert.True(t, MustGetPrincipal(NewSystemContext(t.Context())).IsSystem())
	assert.True(t, MustGetPrincipal(NewTestContext(t.Context())).IsTest())
	assert.True(t, MustGetPrincipal(NewAnonymousContext(t.Context())).IsAnonymous())

	assert.Equal(t, "system", Principal{Type: PrincipalTypeSystem}.String())
	assert.Equal(t, "anonymous", Principal{Type: PrincipalTypeAnonymous}.String())
}

func TestRequireSystemPrincipal(t *testing.T) {
	assert.NoError(t, RequireSystemPrincipal(NewSystemContext(t.Context())))

	userCtx := NewUserContext(t.Context(), testUser("u1", "t1", objects.RoleAdmin))
	assert.Error(t, RequireSystemPrincipal(userCtx))
	assert.Error(t, RequireSystemPrincipal(t.Context()))
}
