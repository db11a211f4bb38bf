package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/angaddubey10/oauth-demo/internal/domain"
	apperrors "github.com/angaddubey10/oauth-demo/pkg/util"
)

// RequireRole gates a route on the token's role claim. Access decisions rely
// only on the verified claim, never on anything else the client sends.
func RequireRole(required domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if required == domain.RoleAdmin && principal.Identity.Role != domain.RoleAdmin {
			return apperrors.NewForbidden("admin access required")
		}
		return c.Next()
	}
}
