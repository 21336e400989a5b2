package consumer

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/opscheduler/opscheduler-api/db"
	"github.com/opscheduler/opscheduler-api/models"
	"gorm.io/gorm"
)

// GetUpcomingOperations lists the caller's operations at or after now.
// "Now" is computed once when the query runs; an operation starting a
// moment later is still included until the next fetch.
func GetUpcomingOperations(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var patient models.Patient
	if db.DB.Where("auth_uid = ?", userID).First(&patient).RowsAffected == 0 {
		return c.JSON([]models.Schedule{})
	}

	var schedules []models.Schedule
	if err := db.DB.
		Where("patient_id = ? AND operation_date_time >= ?", patient.ID, time.Now()).
		Order("operation_date_time ASC").
		Find(&schedules).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load your data.",
		})
	}

	return c.JSON(schedules)
}

// GetDoctorDetails looks up a doctor referenced from an operation row. The
// doctor may have been deleted after the schedule was written; that is a
// not-found message, not a failure.
func GetDoctorDetails(c *fiber.Ctx) error {
	id := c.Params("id")

	var doctor models.Doctor
	if err := db.DB.First(&doctor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Doctor details not found.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load your data.",
		})
	}

	return c.JSON(fiber.Map{
		"name":      doctor.Name,
		"specialty": doctor.Specialty,
		"email":     doctor.Email,
	})
}
