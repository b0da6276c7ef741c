package routes

import (
	"github.com/gofiber/fiber/v2"

	"site-analytics-service/internal/controller"
)

// Register attaches all HTTP routes to the Fiber app.
func Register(app *fiber.App, analyticsController controller.AnalyticsController) {
	app.Post("/analytics", analyticsController.Track)
	app.Get("/analytics", analyticsController.Dashboard)
	app.Get("/analytics/export", analyticsController.Export)
	app.Delete("/analytics", analyticsController.Purge)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}
