package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/opscheduler/opscheduler-api/db"
	"github.com/opscheduler/opscheduler-api/models"
	"gorm.io/gorm"
)

// GetAllPatients returns the full patient list, no pagination
func GetAllPatients(c *fiber.Ctx) error {
	var patients []models.Patient

	if err := db.DB.Find(&patients).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load patients",
		})
	}

	return c.JSON(patients)
}

func GetPatient(c *fiber.Ctx) error {
	id := c.Params("id")
	var patient models.Patient
	if err := db.DB.First(&patient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Patient not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load patient",
		})
	}
	return c.JSON(patient)
}

// CreatePatient creates a patient record from the admin form. Patients
// created here have no linked account until one registers with the same
// email.
func CreatePatient(c *fiber.Ctx) error {
	patient := new(models.Patient)
	if err := c.BodyParser(patient); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if patient.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Patient name is required",
		})
	}

	if err := db.DB.Create(&patient).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save patient",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(patient)
}

// UpdatePatient updates an existing patient record
func UpdatePatient(c *fiber.Ctx) error {
	id := c.Params("id")
	input := new(models.Patient)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var patient models.Patient
	if err := db.DB.First(&patient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Patient not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load patient",
		})
	}

	patient.Name = input.Name
	patient.Email = input.Email
	patient.Phone = input.Phone
	patient.DOB = input.DOB
	patient.Address = input.Address

	if err := db.DB.Save(&patient).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save patient",
		})
	}

	return c.JSON(patient)
}

// DeletePatient deletes a patient record. The linked account, if any, is
// left in place and will resolve to the "member" role on its next login.
func DeletePatient(c *fiber.Ctx) error {
	id := c.Params("id")
	var patient models.Patient
	if err := db.DB.First(&patient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Patient not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load patient",
		})
	}

	if err := db.DB.Delete(&patient).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete patient.",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
