package itemValidator

import (
	"strings"

	itemController "rateapp/controllers/item"
	"rateapp/middleware"

	"github.com/gofiber/fiber/v2"
)

// Create validator middleware
func Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(itemController.CreateItemRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		code := strings.TrimSpace(reqData.Code)
		if len(code) < 2 || len(code) > 32 {
			errors["code"] = "Code must be between 2 and 32 characters long!"
		}

		// Name may be empty; it is display-only
		if len(reqData.Name) > 200 {
			errors["name"] = "Name must be at most 200 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData.Code = code
		c.Locals("validatedItem", reqData)
		return c.Next()
	}
}

// Update validator middleware
func Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(itemController.UpdateItemRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Code != nil {
			code := strings.TrimSpace(*reqData.Code)
			if len(code) < 2 || len(code) > 32 {
				errors["code"] = "Code must be between 2 and 32 characters long!"
			} else {
				reqData.Code = &code
			}
		}

		if reqData.Name != nil {
			if len(*reqData.Name) < 1 || len(*reqData.Name) > 200 {
				errors["name"] = "Name must be between 1 and 200 characters long!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedItemUpdate", reqData)
		return c.Next()
	}
}
