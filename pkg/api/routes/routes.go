package routes

import (
	"context"

	"github.com/buswatch/buswatch/pkg/transit"
	"github.com/gofiber/fiber/v2"
)

// RouteStore resolves and lists routes. Get returns (nil, nil) on a miss.
type RouteStore interface {
	Get(ctx context.Context, identifier string) (*transit.Route, error)
	List(ctx context.Context) ([]*transit.Route, error)
}

// StopStore resolves stop identifiers. Get returns (nil, nil) on a miss.
type StopStore interface {
	Get(ctx context.Context, identifier string) (*transit.Stop, error)
}

func RoutesRouter(router fiber.Router, routeStore RouteStore, stopStore StopStore) {
	router.Get("/", listRoutes(routeStore))
	router.Get("/:identifier/stops", getStopsPerRoute(routeStore, stopStore))
}

// listRoutes populates the route picker on the frontend.
func listRoutes(routeStore RouteStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		routes, err := routeStore.List(c.Context())
		if err != nil {
			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if len(routes) == 0 {
			c.SendStatus(fiber.StatusNotFound)
			return c.JSON(fiber.Map{
				"error": "No routes found",
			})
		}

		response := []fiber.Map{}
		for _, route := range routes {
			response = append(response, fiber.Map{
				"id":        route.PrimaryIdentifier,
				"name":      route.Name,
				"direction": route.Direction,
			})
		}

		return c.JSON(response)
	}
}

func getStopsPerRoute(routeStore RouteStore, stopStore StopStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier := c.Params("identifier")

		route, err := routeStore.Get(c.Context(), identifier)
		if err != nil {
			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if route == nil || len(route.Stops) == 0 {
			c.SendStatus(fiber.StatusNotFound)
			return c.JSON(fiber.Map{
				"error": "No stops found for this route",
			})
		}

		response := []fiber.Map{}
		for _, routeStop := range route.Stops {
			entry := fiber.Map{
				"id":       routeStop.StopRef,
				"sequence": routeStop.Sequence,
			}

			stop, err := stopStore.Get(c.Context(), routeStop.StopRef)
			if err == nil && stop != nil {
				entry["name"] = stop.Name
			}

			response = append(response, entry)
		}

		return c.JSON(response)
	}
}
