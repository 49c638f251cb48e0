package main

import (
	"log"

	"vidya/config"
	"vidya/database"
	authRoutes "vidya/routers/authRoutes"
	contentRoutes "vidya/routers/contentRoutes"
	notificationRoutes "vidya/routers/notificationRoutes"
	parentRoutes "vidya/routers/parentRoutes"
	progressRoutes "vidya/routers/progressRoutes"
	"vidya/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",  // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	contentRoutes.SetupContentRoutes(app)
	contentRoutes.SetupAdminContentRoutes(app)
	progressRoutes.SetupProgressRoutes(app)
	parentRoutes.SetupParentRoutes(app)
	notificationRoutes.SetupNotificationRoutes(app)

	utils.StartNotificationScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
