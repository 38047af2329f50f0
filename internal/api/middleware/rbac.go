package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/farm2door/marketplace/internal/core/domain"
)

// RequireRole allows the request through only when the authenticated caller
// holds one of the given roles. Must run after Auth.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := IdentityFrom(c)
			if identity == nil {
				return domain.NewUnauthorized("Authentication required")
			}
			if _, ok := allowed[identity.Role]; !ok {
				return domain.NewForbidden("Insufficient permissions")
			}
			return next(c)
		}
	}
}

// RequireCustomer restricts the route to customers.
func RequireCustomer() echo.MiddlewareFunc {
	return RequireRole(domain.RoleCustomer)
}

// RequireFarmer restricts the route to farmers.
func RequireFarmer() echo.MiddlewareFunc {
	return RequireRole(domain.RoleFarmer)
}

// RequireAdmin restricts the route to admins.
func RequireAdmin() echo.MiddlewareFunc {
	return RequireRole(domain.RoleAdmin)
}

// CheckOwnership reports an error unless identity owns the resource or is an
// admin. Handlers call this for per-object access decisions the route-level
// role check cannot express.
func CheckOwnership(identity *domain.Identity, ownerID string) error {
	if identity == nil {
		return domain.NewUnauthorized("Authentication required")
	}
	if identity.Role == domain.RoleAdmin || identity.UserID == ownerID {
		return nil
	}
	return domain.NewForbidden("You do not have access to this resource")
}
