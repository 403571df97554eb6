package store

import (
	"context"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulexo/platform/internal/authz"
	"github.com/fulexo/platform/internal/contexts"
	"github.com/fulexo/platform/internal/errs"
)

func TestScopeFromContext(t *testing.T) {
	t.Run("bound tenant", func(t *testing.T) {
		ctx := contexts.WithTenantID(context.Background(), "tenant-1")

		scope, err := scopeFromContext(ctx)
		require.NoError(t, err)
		require.NotNil(t, scope.TenantID)
		assert.Equal(t, "tenant-1", *scope.TenantID)
	})

	t.Run("no tenant and no bypass is rejected", func(t *testing.T) {
		_, err := scopeFromContext(context.Background())
		assert.ErrorIs(t, err, errs.ErrTenantRequired)
	})

	t.Run("bypass allows unscoped", func(t *testing.T) {
		ctx := authz.WithSystemBypass(authz.NewSystemContext(context.Background()), "maintenance")

		scope, err := scopeFromContext(ctx)
		require.NoError(t, err)
		assert.Nil(t, scope.TenantID)
	})

	t.Run("bound tenant wins under bypass", func(t *testing.T) {
		ctx := authz.WithSystemBypass(authz.NewSystemContext(context.Background()), "sync")
		ctx = contexts.WithTenantID(ctx, "tenant-2")

		scope, err := scopeFromContext(ctx)
		require.NoError(t, err)
		require.NotNil(t, scope.TenantID)
		assert.Equal(t, "tenant-2", *scope.TenantID)
	})
}

func TestScopeInjectsTenantPredicate(t *testing.T) {
	tenantID := "tenant-1"
	scope := tenantScope{TenantID: &tenantID}

	t.Run("select", func(t *testing.T) {
		query, args, err := scope.scopeSelect(
			psql.Select("id").From("orders").Where(sq.Eq{"id": "o-1"}),
		).ToSql()
		require.NoError(t, err)
		assert.Contains(t, query, "tenant_id = $")
		assert.Contains(t, args, "tenant-1")
	})

	t.Run("update", func(t *testing.T) {
		query, args, err := scope.scopeUpdate(
			psql.Update("orders").Set("status", "completed").Where(sq.Eq{"id": "o-1"}),
		).ToSql()
		require.NoError(t, err)
		assert.Contains(t, query, "tenant_id = $")
		assert.Contains(t, args, "tenant-1")
	})

	t.Run("delete", func(t *testing.T) {
		query, args, err := scope.scopeDelete(
			psql.Delete("orders").Where(sq.Eq{"id": "o-1"}),
		).ToSql()
		require.NoError(t, err)
		assert.Contains(t, query, "tenant_id = $")
		assert.Contains(t, args, "tenant-1")
	})

	t.Run("unscoped builders carry no predicate", func(t *testing.T) {
		query, _, err := tenantScope{}.scopeSelect(psql.Select("id").From("orders")).ToSql()
		require.NoError(t, err)
		assert.NotContains(t, query, "tenant_id")
	})
}

func TestStampTenant(t *testing.T) {
	t.Run("ambient tenant wins over row tenant", func(t *testing.T) {
		ctx := contexts.WithTenantID(context.Background(), "tenant-1")

		tenantID, err := stampTenant(ctx, "tenant-other")
		require.NoError(t, err)
		assert.Equal(t, "tenant-1", tenantID)
	})

	t.Run("row tenant honoured under bypass", func(t *testing.T) {
		ctx := authz.WithSystemBypass(authz.NewSystemContext(context.Background()), "provision")

		tenantID, err := stampTenant(ctx, "tenant-3")
		require.NoError(t, err)
		assert.Equal(t, "tenant-3", tenantID)
	})

	t.Run("bypass without row tenant is rejected", func(t *testing.T) {
		ctx := authz.WithSystemBypass(authz.NewSystemContext(context.Background()), "provision")

		_, err := stampTenant(ctx, "")
		assert.ErrorIs(t, err, errs.ErrTenantRequired)
	})

	t.Run("no tenant anywhere is rejected", func(t *testing.T) {
		_, err := stampTenant(context.Background(), "tenant-1")
		assert.ErrorIs(t, err, errs.ErrTenantRequired)
	})
}

func TestRequireBypass(t *testing.T) {
	t.Run("denied without bypass", func(t *testing.T) {
		err := requireBypass(contexts.WithTenantID(context.Background(), "tenant-1"))
		require.Error(t, err)
		assert.Equal(t, errs.KindAuthorization, errs.KindOf(err))
	})

	t.Run("allowed under test bypass", func(t *testing.T) {
		ctx := authz.WithTestBypass(authz.NewTestContext(context.Background()))
		assert.NoError(t, requireBypass(ctx))
	})
}
