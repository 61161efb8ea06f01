package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	localUserID = "user_id"
	localEmail  = "email"
	localRole   = "role"
)

// RequireRole verifies the bearer access token and gates the route on the
// role claim.
func (h *AuthHandler) RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing bearer token"})
		}

		claims, err := h.tokenService.VerifyAccess(tokenString)
		if err != nil {
			return tokenError(c, err)
		}

		if claims.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "insufficient privileges"})
		}

		c.Locals(localUserID, claims.UserID)
		c.Locals(localEmail, claims.Email)
		c.Locals(localRole, claims.Role)

		return c.Next()
	}
}
