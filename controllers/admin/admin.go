package adminController

import (
	"log"
	"strings"
	"time"

	"rateapp/database"
	"rateapp/middleware"
	"rateapp/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateInviteRequest struct {
	ExpiresInDays *int `json:"expires_in_days"`
}

// CreateInvite issues a single-use invite code, optionally expiring
func CreateInvite(c *fiber.Ctx) error {
	reqData := c.Locals("validatedInvite").(*CreateInviteRequest)

	var expiresAt *time.Time
	if reqData.ExpiresInDays != nil {
		t := time.Now().AddDate(0, 0, *reqData.ExpiresInDays)
		expiresAt = &t
	}

	invite := models.Invite{
		Code:      strings.ReplaceAll(uuid.New().String(), "-", ""),
		ExpiresAt: expiresAt,
	}
	if err := database.Database.Db.Create(&invite).Error; err != nil {
		log.Printf("Error creating invite: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create invite!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Invite created successfully!", fiber.Map{
		"code":       invite.Code,
		"expires_at": invite.ExpiresAt,
	})
}

// ListUsers returns all participants, newest first
func ListUsers(c *fiber.Ctx) error {
	users := []models.User{}
	if err := database.Database.Db.Order("created_at DESC").Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched!", users)
}

// BlockUser blocks a participant from logging in or using the API
func BlockUser(c *fiber.Ctx) error {
	return setBlocked(c, true, "User blocked successfully!")
}

// UnblockUser lifts a block
func UnblockUser(c *fiber.Ctx) error {
	return setBlocked(c, false, "User unblocked successfully!")
}

func setBlocked(c *fiber.Ctx, blocked bool, message string) error {
	userId := c.Params("id")

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ?", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	user.IsBlocked = blocked
	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error updating user block state: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, user)
}
