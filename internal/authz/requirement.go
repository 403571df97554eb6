package authz

import (
	"context"
	"fmt"

	"github.com/fulexo/platform/internal/errs"
	"github.com/fulexo/platform/internal/log"
	"github.com/fulexo/platform/internal/objects"
)

// Requirement is a statically declared route requirement, consulted by the
// guard at dispatch time. The zero value admits every request.
type Requirement struct {
	// Authenticated requires any bound identity.
	Authenticated bool
	// Role additionally requires the given role. Implies Authenticated.
	Role objects.Role
}

var (
	// RequireNone admits every request.
	RequireNone = Requirement{}
	// RequireAuthenticated admits any authenticated principal.
	RequireAuthenticated = Requirement{Authenticated: true}
	// RequireAdmin admits only ADMIN users (and system/test principals).
	RequireAdmin = Requirement{Authenticated: true, Role: objects.RoleAdmin}
)

// Authorize evaluates the requirement against the bound principal.
//
// A request with no declared requirement is always admitted. A request
// declaring a requirement but lacking identity gets an authentication
// error, not an authorization error: "who are you" is distinguished from
// "you can't do that". Authorize never mutates the context.
func Authorize(ctx context.Context, req Requirement) error {
	if !req.Authenticated && req.Role == "" {
		return nil
	}

	p, ok := GetPrincipal(ctx)
	if !ok || p.IsAnonymous() {
		return errs.Authentication("Authentication required")
	}

	// System and test principals pass every role requirement.
	if p.IsSystem() || p.IsTest() {
		return nil
	}

	if req.Role != "" && p.Role != req.Role {
		log.Warn(ctx, "authz: access denied",
			log.String("principal", p.String()),
			log.String("required_role", req.Role.String()),
			log.String("role", p.Role.String()),
		)

		return errs.Authorization(fmt.Sprintf("Requires role %s", req.Role))
	}

	return nil
}
