package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/opscheduler/opscheduler-api/controllers"
	"github.com/opscheduler/opscheduler-api/middleware"
	"github.com/opscheduler/opscheduler-api/models"
)

// SetupPatientRoutes configures the admin patient section
func SetupPatientRoutes(app *fiber.App) {
	patient := app.Group("/api/patients", middleware.Protected(), middleware.RequireRole(models.RoleAdmin))
	patient.Get("/", controllers.GetAllPatients)
	patient.Get("/:id", controllers.GetPatient)
	patient.Post("/", controllers.CreatePatient)
	patient.Put("/:id", controllers.UpdatePatient)
	patient.Delete("/:id", controllers.DeletePatient)
}
