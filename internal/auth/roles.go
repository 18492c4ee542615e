package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/albedo-hq/support-portal/internal/domain"
	apperrors "github.com/albedo-hq/support-portal/pkg/util"
)

// RequireRole ensures the authenticated staff user holds one of the
// allowed roles. Runs after Handle; rejects before any handler logic.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		user, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("Authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[user.Role]; !exists {
			return apperrors.NewForbidden("Insufficient role")
		}
		return c.Next()
	}
}
