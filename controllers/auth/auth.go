package authController

import (
	"errors"
	"log"
	"time"

	"rateapp/config"
	"rateapp/database"
	"rateapp/middleware"
	"rateapp/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var errInvalidInvite = errors.New("invalid invite")

type RegisterRequest struct {
	InviteCode string `json:"invite_code"`
	Username   string `json:"username"`
	Password   string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a participant account against a valid invite code
func Register(c *fiber.Ctx) error {
	reqData := c.Locals("validatedRegister").(*RegisterRequest)

	db := database.Database.Db

	// Check if username already exists
	if err := db.Where("username = ?", reqData.Username).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Username already exists!", nil)
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	var newUser models.User

	// The invite must be unused and unexpired; redeeming it and creating the
	// account happen together or not at all.
	err = db.Transaction(func(tx *gorm.DB) error {
		var invite models.Invite
		if err := tx.Where("code = ?", reqData.InviteCode).First(&invite).Error; err != nil {
			return errInvalidInvite
		}
		if invite.UsedByUserID != nil {
			return errInvalidInvite
		}
		if invite.ExpiresAt != nil && invite.ExpiresAt.Before(time.Now()) {
			return errInvalidInvite
		}

		newUser = models.User{
			Username: reqData.Username,
			Password: string(hashedPassword),
		}
		if err := tx.Create(&newUser).Error; err != nil {
			return err
		}

		invite.UsedByUserID = &newUser.ID
		return tx.Save(&invite).Error
	})
	if errors.Is(err, errInvalidInvite) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid invite code!", nil)
	}
	if err != nil {
		log.Printf("Error registering user: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", newUser)
}

// Login verifies credentials and returns a bearer token
func Login(c *fiber.Ctx) error {
	reqData := c.Locals("validatedLogin").(*LoginRequest)

	var user models.User
	if err := database.Database.Db.Where("username = ?", reqData.Username).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if user.IsBlocked {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User blocked!", nil)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to login!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Me returns the authenticated participant's identity
func Me(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ?", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched!", fiber.Map{
		"id":       user.ID,
		"username": user.Username,
		"is_admin": user.IsAdmin,
	})
}
