// Package authz implements the tenant-isolation governance mechanism:
// a single authorization principal per request, declarative role
// requirements for routes, and a controlled, audited bypass for
// cross-tenant operations.
//
// Core concepts:
//
//   - Principal: A single authorization identity per request
//     (Anonymous/User/System/Test). Set via NewUserContext,
//     NewSystemContext, or WithPrincipal.
//
//   - Requirement: A statically declared route requirement (none,
//     authenticated, or a specific role), evaluated by Authorize at
//     dispatch time.
//
//   - Bypass: Controlled cross-tenant access via RunWithBypass (closure,
//     preferred) or WithBypassTenantScope (explicit context). All bypass
//     operations are audited.
//
// Usage rules:
//
//  1. Tenant-owned repositories must refuse unscoped queries unless a
//     bypass is active; never check the bypass anywhere else.
//  2. Prefer RunWithBypass / RunWithSystemBypass closures to limit scope.
//  3. When using WithBypassTenantScope, assign to bypassCtx, never ctx.
//  4. All bypass reasons must be stable strings for audit aggregation.
//  5. Background tasks must declare System principal via NewSystemContext.
package authz
