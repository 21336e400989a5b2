package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/opscheduler/opscheduler-api/controllers"
	"github.com/opscheduler/opscheduler-api/middleware"
	"github.com/opscheduler/opscheduler-api/models"
)

// SetupDoctorRoutes configures the admin doctor section
func SetupDoctorRoutes(app *fiber.App) {
	doctor := app.Group("/api/doctors", middleware.Protected(), middleware.RequireRole(models.RoleAdmin))
	doctor.Get("/", controllers.GetAllDoctors)
	doctor.Get("/:id", controllers.GetDoctor)
	doctor.Post("/", controllers.CreateDoctor)
	doctor.Put("/:id", controllers.UpdateDoctor)
	doctor.Delete("/:id", controllers.DeleteDoctor)
	doctor.Post("/:id/photo", controllers.UploadDoctorPhoto)
}
