package authValidator

import (
	"strings"

	authController "rateapp/controllers/auth"
	"rateapp/middleware"

	"github.com/gofiber/fiber/v2"
)

// Register validator middleware
func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(authController.RegisterRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Invite Code
		if strings.TrimSpace(reqData.InviteCode) == "" {
			errors["invite_code"] = "Invite code is required!"
		}

		// Validate Username
		username := strings.TrimSpace(reqData.Username)
		if len(username) < 3 || len(username) > 50 {
			errors["username"] = "Username must be between 3 and 50 characters long!"
		}

		// Validate Password
		if len(reqData.Password) < 6 || len(reqData.Password) > 128 {
			errors["password"] = "Password must be between 6 and 128 characters long!"
		}

		// Respond with errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData.Username = username
		c.Locals("validatedRegister", reqData)
		return c.Next()
	}
}

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(authController.LoginRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Username) == "" {
			errors["username"] = "Username is required!"
		}
		if reqData.Password == "" {
			errors["password"] = "Password is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}
