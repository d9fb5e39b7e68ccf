package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ShabiGardezi/crm-hunfa/internal/access"
	apperrors "github.com/ShabiGardezi/crm-hunfa/pkg/util/errorutil"
)

// RequireAuthenticated rejects requests without a loaded principal.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}

// RequireOperation rejects callers whose role has no scope for op. Services
// still authorize with the guard; this only short-circuits whole route groups.
func RequireOperation(ops ...access.Operation) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		for _, op := range ops {
			if access.IsAllowed(principal.User.Role, op) {
				return c.Next()
			}
		}
		return apperrors.NewForbidden("insufficient role")
	}
}
