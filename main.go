package main

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/opscheduler/opscheduler-api/cron"
	"github.com/opscheduler/opscheduler-api/db"
	"github.com/opscheduler/opscheduler-api/middleware"
	"github.com/opscheduler/opscheduler-api/redis"
	"github.com/opscheduler/opscheduler-api/routes"
)

func main() {
	app := fiber.New()
	db.Init()
	db.Migrate()
	redis.InitRedis()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	tracker := middleware.NewActivityTracker()
	app.Use(tracker.Middleware())
	app.Get("/status", tracker.StatusHandler())

	routes.SetupAuthRoutes(app)
	routes.SetupRBACRoutes(app)
	routes.SetupDashboardRoutes(app)
	routes.SetupDoctorRoutes(app)
	routes.SetupPatientRoutes(app)
	routes.SetupScheduleRoutes(app)
	routes.SetupConsumerRoutes(app)

	cron.StartCronJobs()

	app.Listen(":8000")
}
