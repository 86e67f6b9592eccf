package statsValidator

import (
	"rateapp/middleware"
	"rateapp/stats"

	"github.com/gofiber/fiber/v2"
)

// Range validator middleware. Accepts ?range=7|30|all, defaulting to all.
func Range() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rangeName := c.Query("range", "all")
		if !stats.ValidRange(rangeName) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid range! Use 7, 30 or all.", nil)
		}

		c.Locals("validatedRange", rangeName)
		return c.Next()
	}
}

// Mode validator middleware. Accepts ?mode=mine|global, defaulting to global.
func Mode() fiber.Handler {
	return func(c *fiber.Ctx) error {
		mode := c.Query("mode", "global")
		if !stats.ValidMode(mode) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid mode! Use mine or global.", nil)
		}

		c.Locals("validatedMode", mode)
		return c.Next()
	}
}
