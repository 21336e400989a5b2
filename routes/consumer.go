package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/opscheduler/opscheduler-api/controllers/consumer"
	"github.com/opscheduler/opscheduler-api/middleware"
)

// SetupConsumerRoutes configures the patient self-service view. Any
// authenticated account may call these; the data is scoped to the caller's
// own patient record.
func SetupConsumerRoutes(app *fiber.App) {
	consumerGroup := app.Group("/consumer", middleware.Protected())
	consumerGroup.Get("/profile", consumer.GetProfile)
	consumerGroup.Get("/operations", consumer.GetUpcomingOperations)
	consumerGroup.Get("/doctors/:id", consumer.GetDoctorDetails)
}
