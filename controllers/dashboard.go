package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/opscheduler/opscheduler-api/db"
	"github.com/opscheduler/opscheduler-api/models"
	"github.com/opscheduler/opscheduler-api/utils"
)

// GetDashboardOverview returns the admin dashboard counters: operations
// scheduled today, operations after today, and the doctor/patient totals.
func GetDashboardOverview(c *fiber.Ctx) error {
	var statistics struct {
		TodaysOperations   int64     `json:"todays_operations"`
		UpcomingOperations int64     `json:"upcoming_operations"`
		TotalDoctors       int64     `json:"total_doctors"`
		TotalPatients      int64     `json:"total_patients"`
		LastUpdated        time.Time `json:"last_updated"`
	}

	startOfToday, endOfToday := utils.DayBounds(time.Now())

	scheduleQuery := db.DB.Model(&models.Schedule{})

	if err := scheduleQuery.
		Where("operation_date_time BETWEEN ? AND ?", startOfToday, endOfToday).
		Count(&statistics.TodaysOperations).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load dashboard data.",
		})
	}

	if err := db.DB.Model(&models.Schedule{}).
		Where("operation_date_time > ?", endOfToday).
		Count(&statistics.UpcomingOperations).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load dashboard data.",
		})
	}

	if err := db.DB.Model(&models.Doctor{}).Count(&statistics.TotalDoctors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load dashboard data.",
		})
	}

	if err := db.DB.Model(&models.Patient{}).Count(&statistics.TotalPatients).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load dashboard data.",
		})
	}

	statistics.LastUpdated = time.Now()

	return c.JSON(statistics)
}
