package routes

import (
	"errors"
	"time"

	"github.com/buswatch/buswatch/pkg/metrics"
	"github.com/buswatch/buswatch/pkg/ratelimit"
	"github.com/buswatch/buswatch/pkg/tracker"
	"github.com/buswatch/buswatch/pkg/transit"
	"github.com/gofiber/fiber/v2"
)

const predictedArrivalFormat = "2006-01-02 15:04:05"

type startJourneyRequest struct {
	RouteRef         string     `json:"route_id"`
	StartStopRef     string     `json:"start_stop_id"`
	EndStopRef       string     `json:"end_stop_id"`
	PlannedStartTime *time.Time `json:"planned_start_time"`
}

type addJourneyEventRequest struct {
	Event string `json:"event"`
}

func JourneysRouter(router fiber.Router, journeyTracker *tracker.Tracker, limiter *ratelimit.CooldownLimiter) {
	router.Post("/start", startJourney(journeyTracker))
	router.Get("/:identifier", getJourney(journeyTracker))
	router.Post("/:identifier/event", addJourneyEvent(journeyTracker, limiter))
}

func startJourney(journeyTracker *tracker.Tracker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var request startJourneyRequest
		if err := c.BodyParser(&request); err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		if request.RouteRef == "" {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Route is required",
			})
		}
		if request.StartStopRef == "" {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Start stop is required",
			})
		}

		journey, err := journeyTracker.Start(c.Context(), tracker.StartRequest{
			RouteRef:         request.RouteRef,
			StartStopRef:     request.StartStopRef,
			EndStopRef:       request.EndStopRef,
			PlannedStartTime: request.PlannedStartTime,
		})
		if err != nil {
			var notFound tracker.NotFoundError
			if errors.As(err, &notFound) {
				c.SendStatus(fiber.StatusNotFound)
			} else {
				c.SendStatus(fiber.StatusInternalServerError)
			}
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"journey_id":          journey.PrimaryIdentifier,
			"route_id":            journey.RouteRef,
			"start_stop_id":       journey.StartStopRef,
			"status":              journey.Status,
			"predicted_status":    journey.PredictedStatus,
			"predicted_arrival":   journey.PredictedArrival.Format(predictedArrivalFormat),
			"official_start_time": journey.OfficialStartTime,
			"official_end_time":   journey.OfficialEndTime,
		})
	}
}

// getJourney only serves journeys still in flight. Completed journeys
// exist purely as duration samples and are not addressable here.
func getJourney(journeyTracker *tracker.Tracker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier := c.Params("identifier")

		journey, err := journeyTracker.Journeys.Get(c.Context(), identifier)
		if err != nil {
			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if journey == nil || journey.Status == transit.JourneyStatusStopReached || journey.EndTime != nil {
			c.SendStatus(fiber.StatusNotFound)
			return c.JSON(fiber.Map{
				"error": "Active journey not found",
			})
		}

		return c.JSON(fiber.Map{
			"journey_id":          journey.PrimaryIdentifier,
			"route_id":            journey.RouteRef,
			"start_stop_id":       journey.StartStopRef,
			"end_stop_id":         journey.EndStopRef,
			"status":              journey.Status,
			"predicted_status":    journey.PredictedStatus,
			"predicted_arrival":   journey.PredictedArrival.Format(predictedArrivalFormat),
			"official_start_time": journey.OfficialStartTime,
			"official_end_time":   journey.OfficialEndTime,
		})
	}
}

func addJourneyEvent(journeyTracker *tracker.Tracker, limiter *ratelimit.CooldownLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier := c.Params("identifier")

		var request addJourneyEventRequest
		if err := c.BodyParser(&request); err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		if request.Event == "" {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Event type is required (e.g. ARRIVED, DELAYED, STOP_REACHED)",
			})
		}

		if allowed, remaining := limiter.Check(c.Context(), identifier); !allowed {
			metrics.EventsRateLimited.Inc()
			c.SendStatus(fiber.StatusTooManyRequests)
			return c.JSON(fiber.Map{
				"error":       "Too many requests for this journey",
				"retry_after": int(remaining.Seconds()),
			})
		}

		event, err := tracker.ParseEvent(request.Event)
		if err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		journey, err := journeyTracker.Transition(c.Context(), identifier, event)
		if err != nil {
			var notFound tracker.NotFoundError
			var invalidTransition tracker.InvalidTransitionError

			switch {
			case errors.As(err, &notFound):
				c.SendStatus(fiber.StatusNotFound)
			case errors.As(err, &invalidTransition):
				c.SendStatus(fiber.StatusBadRequest)
			default:
				c.SendStatus(fiber.StatusInternalServerError)
			}
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		response := fiber.Map{
			"journey_id":        journey.PrimaryIdentifier,
			"status":            journey.Status,
			"predicted_arrival": journey.PredictedArrival.Format(predictedArrivalFormat),
		}
		if journey.EndTime != nil {
			response["end_time"] = journey.EndTime.UTC().Format(time.RFC3339)
		}

		return c.JSON(response)
	}
}
