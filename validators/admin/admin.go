package adminValidator

import (
	adminController "rateapp/controllers/admin"
	"rateapp/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateInvite validator middleware
func CreateInvite() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(adminController.CreateInviteRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.ExpiresInDays != nil {
			if *reqData.ExpiresInDays < 1 || *reqData.ExpiresInDays > 365 {
				errors["expires_in_days"] = "Expiry must be between 1 and 365 days!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedInvite", reqData)
		return c.Next()
	}
}
