package itemRoutes

import (
	itemControllers "rateapp/controllers/item"
	ratingControllers "rateapp/controllers/rating"
	statsControllers "rateapp/controllers/stats"
	"rateapp/middleware"
	itemValidators "rateapp/validators/item"
	ratingValidators "rateapp/validators/rating"
	statsValidators "rateapp/validators/stats"

	"github.com/gofiber/fiber/v2"
)

func SetupItemRoutes(app *fiber.App) {
	itemGroup := app.Group("/items", middleware.JWTMiddleware)

	itemGroup.Get("/", itemControllers.ListItems)
	itemGroup.Post("/", itemValidators.Create(), itemControllers.CreateItem)

	// Registered before the :id routes so "summary" is not taken as an item id
	itemGroup.Get("/summary", statsValidators.Range(), statsControllers.ItemsSummary)

	itemGroup.Patch("/:id", middleware.AdminOnly, itemValidators.Update(), itemControllers.UpdateItem)
	itemGroup.Delete("/:id", middleware.AdminOnly, itemControllers.DeleteItem)

	itemGroup.Post("/:id/ratings", ratingValidators.Submit(), ratingControllers.SubmitRating)
	itemGroup.Get("/:id/detail", ratingControllers.ItemDetail)
	itemGroup.Get("/:id/ratings/summary", ratingControllers.OthersSummary)
	itemGroup.Get("/:id/others", ratingControllers.OthersSummary)
	itemGroup.Get("/:id/stats", statsValidators.Range(), statsControllers.ItemStats)
}
