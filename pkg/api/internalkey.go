package api

import (
	"os"

	"github.com/gofiber/fiber/v2"
)

// InternalKey gates a route group behind the X-Internal-Key header until
// public release. With BUSWATCH_INTERNAL_KEY unset the check is disabled.
func InternalKey() fiber.Handler {
	expectedKey := os.Getenv("BUSWATCH_INTERNAL_KEY")

	return func(c *fiber.Ctx) error {
		if expectedKey == "" {
			return c.Next()
		}

		if c.Get("X-Internal-Key") != expectedKey {
			c.SendStatus(fiber.StatusForbidden)
			return c.JSON(fiber.Map{
				"error": "internal access only",
			})
		}

		return c.Next()
	}
}
