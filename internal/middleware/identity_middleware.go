package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	LocalUserID   = "user_id"
	LocalUserRole = "user_role"
)

// Identity reads the caller's identity from trusted gateway headers and
// makes it available to handlers. Token issuance and verification happen
// upstream; this service only consumes the forwarded identity.
func Identity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get("X-User-ID")
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Missing identity",
			})
		}
		if _, err := uuid.Parse(userID); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Invalid identity",
			})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalUserRole, c.Get("X-User-Role"))
		return c.Next()
	}
}

// RequireRole guards HR-only routes.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals(LocalUserRole) != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Insufficient permissions",
			})
		}
		return c.Next()
	}
}
