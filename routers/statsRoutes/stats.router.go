package statsRoutes

import (
	statsControllers "rateapp/controllers/stats"
	"rateapp/middleware"
	statsValidators "rateapp/validators/stats"

	"github.com/gofiber/fiber/v2"
)

func SetupStatsRoutes(app *fiber.App) {
	app.Get("/stats/ranking", middleware.JWTMiddleware, statsValidators.Range(), statsControllers.Ranking)
	app.Get("/rankings", middleware.JWTMiddleware, statsValidators.Mode(), statsControllers.Rankings)
}
