package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/opscheduler/opscheduler-api/controllers"
	"github.com/opscheduler/opscheduler-api/middleware"
	"github.com/opscheduler/opscheduler-api/models"
)

// SetupScheduleRoutes configures the admin schedule section
func SetupScheduleRoutes(app *fiber.App) {
	schedule := app.Group("/api/schedules", middleware.Protected(), middleware.RequireRole(models.RoleAdmin))
	schedule.Get("/", controllers.GetAllSchedules)
	schedule.Get("/options", controllers.GetScheduleOptions)
	schedule.Get("/:id", controllers.GetSchedule)
	schedule.Post("/", controllers.CreateSchedule)
	schedule.Put("/:id", controllers.UpdateSchedule)
	schedule.Delete("/:id", controllers.DeleteSchedule)
}
