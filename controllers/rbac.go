package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/opscheduler/opscheduler-api/db"
	"github.com/opscheduler/opscheduler-api/models"
	"gorm.io/gorm"
)

// GetRoles returns all roles
func GetRoles(c *fiber.Ctx) error {
	var roles []models.Role

	if err := db.DB.Find(&roles).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get roles",
		})
	}

	return c.JSON(roles)
}

type AssignRoleInput struct {
	UserID   uint   `json:"user_id"`
	RoleName string `json:"role_name"`
}

// AssignRoleToUser sets a user's role. The change is picked up by the
// role-gated middleware on the user's next request, after its store reload
// — not by tokens already issued.
func AssignRoleToUser(c *fiber.Ctx) error {
	input := new(AssignRoleInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.UserID == 0 || input.RoleName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "User ID and role name are required",
		})
	}

	var role models.Role
	if err := db.DB.Where("name = ?", input.RoleName).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Role not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to assign role",
		})
	}

	var user models.User
	if err := db.DB.First(&user, input.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to assign role",
		})
	}

	user.RoleID = role.ID
	if err := db.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to assign role",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Role assigned successfully",
		"user_id": user.ID,
		"role":    role.Name,
	})
}
