package authRoutes

import (
	authControllers "rateapp/controllers/auth"
	"rateapp/middleware"
	authValidators "rateapp/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth", middleware.RateLimit("auth", 20))

	authGroup.Post("/register", authValidators.Register(), authControllers.Register)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)

	app.Get("/me", middleware.JWTMiddleware, authControllers.Me)
}
