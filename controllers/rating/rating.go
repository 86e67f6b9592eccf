package ratingController

import (
	"errors"
	"log"

	"rateapp/database"
	"rateapp/middleware"
	"rateapp/models"
	"rateapp/ratings"

	"github.com/gofiber/fiber/v2"
)

type SubmitRatingRequest struct {
	A int `json:"a"`
	B int `json:"b"`
	C int `json:"c"`
	D int `json:"d"`
	N int `json:"n"`
}

// SubmitRating appends a new rating for the item, subject to the cooldown rule
func SubmitRating(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	reqData := c.Locals("validatedRating").(*SubmitRatingRequest)
	itemId := c.Params("id")

	db := database.Database.Db

	var item models.Item
	if err := db.Where("id = ?", itemId).First(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Item not found!", nil)
	}

	rating, err := ratings.Submit(db, item.ID, userId, reqData.A, reqData.B, reqData.C, reqData.D, reqData.N)
	if errors.Is(err, ratings.ErrCooldown) {
		return middleware.JsonResponse(c, fiber.StatusTooManyRequests, false, "COOLDOWN_RATING_5MIN", nil)
	}
	if errors.Is(err, ratings.ErrScoreOutOfRange) {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"scores": "Scores a-d must be between 0 and 10, n between 0 and 2!",
		})
	}
	if err != nil {
		log.Printf("Error submitting rating: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit rating!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Rating submitted successfully!", rating)
}

// OthersSummary returns aggregates of other participants' ratings for an
// item. Locked until the caller has rated the item themselves.
func OthersSummary(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	itemId := c.Params("id")

	db := database.Database.Db

	var item models.Item
	if err := db.Where("id = ?", itemId).First(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Item not found!", nil)
	}

	summary, err := ratings.ViewOthers(db, item.ID, userId)
	if errors.Is(err, ratings.ErrRateFirst) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "RATE_FIRST_TO_VIEW_OTHERS", nil)
	}
	if err != nil {
		log.Printf("Error building others summary: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch summary!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Summary fetched!", summary)
}

// ItemDetail returns the item with the caller's latest rating and, once the
// caller has rated, each profile slot's latest rating
func ItemDetail(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	itemId := c.Params("id")

	db := database.Database.Db

	var item models.Item
	if err := db.Where("id = ?", itemId).First(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Item not found!", nil)
	}

	detail, err := ratings.Detail(db, item, userId)
	if err != nil {
		log.Printf("Error building item detail: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch item detail!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Item detail fetched!", detail)
}
