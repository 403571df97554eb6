package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/fulexo/platform/internal/authz"
	"github.com/fulexo/platform/internal/contexts"
	"github.com/fulexo/platform/internal/errs"
)

// tenantScope is the resolved isolation scope of one data access call.
// A nil TenantID means unscoped access, which is only ever produced for an
// active bypass.
type tenantScope struct {
	TenantID *string
}

// scopeFromContext resolves the ambient tenant for a tenant-owned table.
//
// Priority: a bound tenant always scopes the call, even under bypass, so a
// worker that binds a job's tenant stays isolated. Without a bound tenant,
// only an audited bypass may proceed unscoped; anything else is a defect
// surfaced as ErrTenantRequired rather than an unfiltered query.
func scopeFromContext(ctx context.Context) (tenantScope, error) {
	if tenantID, ok := contexts.GetTenantID(ctx); ok {
		return tenantScope{TenantID: &tenantID}, nil
	}

	if authz.IsBypassActive(ctx) {
		return tenantScope{}, nil
	}

	return tenantScope{}, errs.ErrTenantRequired
}

// scopeSelect injects the tenant predicate into a select.
func (s tenantScope) scopeSelect(b sq.SelectBuilder) sq.SelectBuilder {
	if s.TenantID != nil {
		return b.Where(sq.Eq{"tenant_id": *s.TenantID})
	}

	return b
}

// scopeUpdate injects the tenant predicate into an update.
func (s tenantScope) scopeUpdate(b sq.UpdateBuilder) sq.UpdateBuilder {
	if s.TenantID != nil {
		return b.Where(sq.Eq{"tenant_id": *s.TenantID})
	}

	return b
}

// scopeDelete injects the tenant predicate into a delete.
func (s tenantScope) scopeDelete(b sq.DeleteBuilder) sq.DeleteBuilder {
	if s.TenantID != nil {
		return b.Where(sq.Eq{"tenant_id": *s.TenantID})
	}

	return b
}

// stampTenant resolves the tenant to write on an insert. The ambient
// tenant always wins; rowTenant is only honoured under bypass (system
// operations creating rows on behalf of a tenant). An insert with neither
// is rejected.
func stampTenant(ctx context.Context, rowTenant string) (string, error) {
	if tenantID, ok := contexts.GetTenantID(ctx); ok {
		return tenantID, nil
	}

	if authz.IsBypassActive(ctx) && rowTenant != "" {
		return rowTenant, nil
	}

	return "", errs.ErrTenantRequired
}

// requireBypass gates the explicitly audited cross-tenant paths.
func requireBypass(ctx context.Context) error {
	if authz.IsBypassActive(ctx) {
		return nil
	}

	return errs.Authorization("cross-tenant access requires an audited bypass")
}
