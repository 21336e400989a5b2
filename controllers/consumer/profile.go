package consumer

import (
	"github.com/gofiber/fiber/v2"
	"github.com/opscheduler/opscheduler-api/db"
	"github.com/opscheduler/opscheduler-api/models"
)

// GetProfile returns the patient profile linked to the logged-in account.
// An account with no profile (created out-of-band, or whose profile an
// admin deleted) gets an empty profile, not an error.
func GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var patient models.Patient
	if db.DB.Where("auth_uid = ?", userID).First(&patient).RowsAffected == 0 {
		return c.JSON(fiber.Map{
			"profile": fiber.Map{},
		})
	}

	return c.JSON(fiber.Map{
		"profile": patient,
	})
}
