package main

import (
	"log"

	"rateapp/config"
	"rateapp/database"
	adminRoutes "rateapp/routers/adminRoutes"
	authRoutes "rateapp/routers/authRoutes"
	itemRoutes "rateapp/routers/itemRoutes"
	statsRoutes "rateapp/routers/statsRoutes"
	"rateapp/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	database.SeedProfiles(database.Database.Db)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "Rating App API"})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	authRoutes.SetupAuthRoutes(app)
	itemRoutes.SetupItemRoutes(app)
	statsRoutes.SetupStatsRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	utils.InitializeInviteScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
