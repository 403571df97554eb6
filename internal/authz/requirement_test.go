package authz

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulexo/platform/internal/errs"
	"github.com/fulexo/platform/internal/objects"
)

func TestAuthorizeNoRequirement(t *testing.T) {
	// No declared requirement admits everything, bound identity or not.
	assert.NoError(t, Authorize(t.Context(), RequireNone))

	ctx := NewUserContext(t.Context(), testUser("u1", "t1", objects.RoleCustomer))
	assert.NoError(t, Authorize(ctx, RequireNone))
}

func TestAuthorizeUnauthenticated(t *testing.T) {
	// No identity against a requiring route: "who are you", not "you can't".
	err := Authorize(t.Context(), RequireAdmin)
	require.Error(t, err)
	assert.Equal(t, errs.KindAuthentication, errs.KindOf(err))

	err = Authorize(NewAnonymousContext(t.Context()), RequireAuthenticated)
	require.Error(t, err)
	assert.Equal(t, errs.KindAuthentication, errs.KindOf(err))
}

func TestAuthorizeInsufficientRole(t *testing.T) {
	ctx := NewUserContext(t.Context(), testUser("u1", "t1", objects.RoleCustomer))

	err := Authorize(ctx, RequireAdmin)
	require.Error(t, err)
	assert.Equal(t, errs.KindAuthorization, errs.KindOf(err))

	var tagged *errs.Error
	require.True(t, errors.As(err, &tagged))
	assert.Equal(t, "AUTHORIZATION_ERROR", tagged.Kind.Code())
}

func TestAuthorizeAdmitted(t *testing.T) {
	admin := NewUserContext(t.Context(), testUser("u2", "t1", objects.RoleAdmin))
	assert.NoError(t, Authorize(admin, RequireAdmin))
	assert.NoError(t, Authorize(admin, RequireAuthenticated))

	customer := NewUserContext(t.Context(), testUser("u3", "t1", objects.RoleCustomer))
	assert.NoError(t, Authorize(customer, RequireAuthenticated))
}

func TestAuthorizeSystemPassesRoles(t *testing.T) {
	assert.NoError(t, Authorize(NewSystemContext(t.Context()), RequireAdmin))
	assert.NoError(t, Authorize(NewTestContext(t.Context()), RequireAdmin))
}
