package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/opscheduler/opscheduler-api/controllers"
	"github.com/opscheduler/opscheduler-api/middleware"
	"github.com/opscheduler/opscheduler-api/models"
)

// SetupRBACRoutes configures role management. This replaces the
// out-of-band claim-setting tool: role changes land in the store and are
// seen by the role middleware on the user's next request.
func SetupRBACRoutes(app *fiber.App) {
	rbac := app.Group("/api/rbac", middleware.Protected(), middleware.RequireRole(models.RoleAdmin))

	rbac.Get("/roles", controllers.GetRoles)
	rbac.Post("/users/role", controllers.AssignRoleToUser)
}
