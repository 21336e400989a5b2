package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/opscheduler/opscheduler-api/db"
	"github.com/opscheduler/opscheduler-api/models"
	"github.com/opscheduler/opscheduler-api/utils"
	"gorm.io/gorm"
)

// GetAllDoctors returns the full doctor list, no pagination
func GetAllDoctors(c *fiber.Ctx) error {
	var doctors []models.Doctor

	if err := db.DB.Find(&doctors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load doctors",
		})
	}

	return c.JSON(doctors)
}

func GetDoctor(c *fiber.Ctx) error {
	id := c.Params("id")
	var doctor models.Doctor
	if err := db.DB.First(&doctor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Doctor details not found.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load doctor",
		})
	}
	return c.JSON(doctor)
}

// CreateDoctor creates a new doctor record
func CreateDoctor(c *fiber.Ctx) error {
	doctor := new(models.Doctor)
	if err := c.BodyParser(doctor); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if doctor.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Doctor name is required",
		})
	}

	if err := db.DB.Create(&doctor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save doctor",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(doctor)
}

// UpdateDoctor updates an existing doctor record
func UpdateDoctor(c *fiber.Ctx) error {
	id := c.Params("id")
	input := new(models.Doctor)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var doctor models.Doctor
	if err := db.DB.First(&doctor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Doctor details not found.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load doctor",
		})
	}

	doctor.Name = input.Name
	doctor.Specialty = input.Specialty
	doctor.Phone = input.Phone
	doctor.Email = input.Email

	if err := db.DB.Save(&doctor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save doctor",
		})
	}

	return c.JSON(doctor)
}

// DeleteDoctor deletes a doctor record. Schedules referencing it keep their
// snapshotted doctor name.
func DeleteDoctor(c *fiber.Ctx) error {
	id := c.Params("id")
	var doctor models.Doctor
	if err := db.DB.First(&doctor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Doctor details not found.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load doctor",
		})
	}

	if err := db.DB.Delete(&doctor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete doctor.",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// UploadDoctorPhoto stores a portrait for the doctor and saves its URL
func UploadDoctorPhoto(c *fiber.Ctx) error {
	id := c.Params("id")
	var doctor models.Doctor
	if err := db.DB.First(&doctor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Doctor details not found.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load doctor",
		})
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to get photo",
		})
	}

	f, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to open photo",
		})
	}
	defer f.Close()

	publicID := fmt.Sprintf("doctor_%d_%d", doctor.ID, time.Now().Unix())
	url, err := utils.UploadToCloudinary(f, publicID, "doctors")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload photo",
		})
	}

	doctor.PhotoURL = url
	if err := db.DB.Save(&doctor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save doctor",
		})
	}

	return c.JSON(doctor)
}
