package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/opscheduler/opscheduler-api/controllers"
	"github.com/opscheduler/opscheduler-api/middleware"
	"github.com/opscheduler/opscheduler-api/models"
)

// SetupDashboardRoutes configures the admin dashboard summary
func SetupDashboardRoutes(app *fiber.App) {
	dashboard := app.Group("/api/dashboard", middleware.Protected(), middleware.RequireRole(models.RoleAdmin))
	dashboard.Get("/overview", controllers.GetDashboardOverview)
}
