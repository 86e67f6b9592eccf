package ratingValidator

import (
	ratingController "rateapp/controllers/rating"
	"rateapp/middleware"

	"github.com/gofiber/fiber/v2"
)

// Submit validator middleware. Score bounds are rejected here, before any
// database lookup happens.
func Submit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ratingController.SubmitRatingRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		subScores := map[string]int{
			"a": reqData.A,
			"b": reqData.B,
			"c": reqData.C,
			"d": reqData.D,
		}
		for field, value := range subScores {
			if value < 0 || value > 10 {
				errors[field] = "Score must be between 0 and 10!"
			}
		}

		if reqData.N < 0 || reqData.N > 2 {
			errors["n"] = "Bonus score must be between 0 and 2!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRating", reqData)
		return c.Next()
	}
}
