package statsController

import (
	"log"

	"rateapp/database"
	"rateapp/middleware"
	"rateapp/models"
	"rateapp/stats"

	"github.com/gofiber/fiber/v2"
)

// Ranking returns the cross-item ranking for the requested range
func Ranking(c *fiber.Ctx) error {
	rangeName := c.Locals("validatedRange").(string)

	entries, err := stats.Ranking(database.Database.Db, rangeName)
	if err != nil {
		log.Printf("Error computing ranking: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch ranking!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ranking fetched!", entries)
}

// ItemStats returns per-item means and recent ratings for the requested range
func ItemStats(c *fiber.Ctx) error {
	rangeName := c.Locals("validatedRange").(string)
	itemId := c.Params("id")

	db := database.Database.Db

	var item models.Item
	if err := db.Where("id = ?", itemId).First(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Item not found!", nil)
	}

	result, err := stats.ItemStatsFor(db, item, rangeName)
	if err != nil {
		log.Printf("Error computing item stats: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch item stats!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Item stats fetched!", result)
}

// ItemsSummary returns per-item own best/mean scores, with global fields for
// privileged callers only
func ItemsSummary(c *fiber.Ctx) error {
	rangeName := c.Locals("validatedRange").(string)
	userId := c.Locals("userId").(uint)
	isAdmin := c.Locals("isAdmin").(bool)

	summaries, err := stats.ItemsSummary(database.Database.Db, rangeName, userId, isAdmin)
	if err != nil {
		log.Printf("Error computing items summary: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch items summary!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Items summary fetched!", summaries)
}

// Rankings returns the six per-metric top-50 lists
func Rankings(c *fiber.Ctx) error {
	mode := c.Locals("validatedMode").(string)
	userId := c.Locals("userId").(uint)

	result, err := stats.TopRankings(database.Database.Db, userId, mode)
	if err != nil {
		log.Printf("Error computing rankings: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch rankings!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Rankings fetched!", result)
}
