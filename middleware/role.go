package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/opscheduler/opscheduler-api/db"
	"github.com/opscheduler/opscheduler-api/models"
)

// RequireRole checks the caller's role against the store rather than
// trusting the token claim. A role change (e.g. promotion to admin) becomes
// visible on the next request, once this reload happens — never from a
// token issued before the change.
func RequireRole(roleName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userID").(uint)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "User ID not found in context",
			})
		}

		var user models.User
		if err := db.DB.Preload("Role").First(&user, userID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "User not found",
			})
		}

		if user.RoleName() != roleName {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You don't have the required role to perform this action",
			})
		}

		// Keep locals in sync with the store, not the token.
		c.Locals("role", user.RoleName())

		return c.Next()
	}
}
