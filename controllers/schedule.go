package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/opscheduler/opscheduler-api/db"
	"github.com/opscheduler/opscheduler-api/models"
	"gorm.io/gorm"
)

type ScheduleInput struct {
	PatientID         uint      `json:"patient_id"`
	DoctorID          uint      `json:"doctor_id"`
	OperationType     string    `json:"operation_type"`
	OperationDateTime time.Time `json:"operation_date_time"`
	Notes             string    `json:"notes"`
}

// GetAllSchedules returns every operation, newest first
func GetAllSchedules(c *fiber.Ctx) error {
	var schedules []models.Schedule

	if err := db.DB.Order("operation_date_time DESC").Find(&schedules).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load schedule",
		})
	}

	return c.JSON(schedules)
}

func GetSchedule(c *fiber.Ctx) error {
	id := c.Params("id")
	var schedule models.Schedule
	if err := db.DB.First(&schedule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Schedule not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load schedule",
		})
	}
	return c.JSON(schedule)
}

// GetScheduleOptions returns the doctor and patient lists the schedule form
// needs for its dropdowns, fetched together before the form is shown.
func GetScheduleOptions(c *fiber.Ctx) error {
	var doctors []models.Doctor
	var patients []models.Patient

	if err := db.DB.Find(&doctors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load necessary data for the form.",
		})
	}
	if err := db.DB.Find(&patients).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load necessary data for the form.",
		})
	}

	return c.JSON(fiber.Map{
		"doctors":  doctors,
		"patients": patients,
	})
}

// snapshotNames resolves the referenced doctor and patient and copies their
// names onto the schedule. The copies are a write-time snapshot; later
// renames do not touch existing schedules.
func snapshotNames(input *ScheduleInput, schedule *models.Schedule) *fiber.Error {
	var doctor models.Doctor
	if err := db.DB.First(&doctor, input.DoctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Doctor details not found.")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load necessary data for the form.")
	}

	var patient models.Patient
	if err := db.DB.First(&patient, input.PatientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Patient not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load necessary data for the form.")
	}

	schedule.DoctorID = doctor.ID
	schedule.DoctorName = doctor.Name
	schedule.PatientID = patient.ID
	schedule.PatientName = patient.Name
	return nil
}

// CreateSchedule creates a new operation schedule
func CreateSchedule(c *fiber.Ctx) error {
	input := new(ScheduleInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.DoctorID == 0 || input.PatientID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Doctor and patient are required",
		})
	}

	schedule := models.Schedule{
		OperationType:     input.OperationType,
		OperationDateTime: input.OperationDateTime,
		Notes:             input.Notes,
	}
	if ferr := snapshotNames(input, &schedule); ferr != nil {
		return c.Status(ferr.Code).JSON(fiber.Map{"error": ferr.Message})
	}

	if err := db.DB.Create(&schedule).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save schedule.",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(schedule)
}

// UpdateSchedule updates an operation schedule, re-snapshotting the
// referenced names from the submitted ids
func UpdateSchedule(c *fiber.Ctx) error {
	id := c.Params("id")
	input := new(ScheduleInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var schedule models.Schedule
	if err := db.DB.First(&schedule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Schedule not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load schedule",
		})
	}

	schedule.OperationType = input.OperationType
	schedule.OperationDateTime = input.OperationDateTime
	schedule.Notes = input.Notes
	if ferr := snapshotNames(input, &schedule); ferr != nil {
		return c.Status(ferr.Code).JSON(fiber.Map{"error": ferr.Message})
	}

	if err := db.DB.Save(&schedule).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save schedule.",
		})
	}

	return c.JSON(schedule)
}

// DeleteSchedule cancels an operation
func DeleteSchedule(c *fiber.Ctx) error {
	id := c.Params("id")
	var schedule models.Schedule
	if err := db.DB.First(&schedule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Schedule not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load schedule",
		})
	}

	if err := db.DB.Delete(&schedule).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to cancel operation.",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
