package api

import (
	"github.com/buswatch/buswatch/pkg/api/routes"
	"github.com/buswatch/buswatch/pkg/database"
	"github.com/buswatch/buswatch/pkg/ratelimit"
	"github.com/buswatch/buswatch/pkg/tracker"
	"github.com/gofiber/fiber/v2"
)

func SetupServer(listen string, journeyTracker *tracker.Tracker, limiter *ratelimit.CooldownLimiter) error {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	webApp.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
		})
	})

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.RoutesRouter(group.Group("/routes"), database.RouteStore{}, database.StopStore{})

	routes.JourneysRouter(group.Group("/journeys", InternalKey()), journeyTracker, limiter)

	return webApp.Listen(listen)
}
