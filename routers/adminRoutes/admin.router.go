package adminRoutes

import (
	adminControllers "rateapp/controllers/admin"
	"rateapp/middleware"
	adminValidators "rateapp/validators/admin"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.AdminOnly)

	adminGroup.Post("/invites", adminValidators.CreateInvite(), adminControllers.CreateInvite)
	adminGroup.Get("/users", adminControllers.ListUsers)
	adminGroup.Post("/users/:id/block", adminControllers.BlockUser)
	adminGroup.Post("/users/:id/unblock", adminControllers.UnblockUser)
}
