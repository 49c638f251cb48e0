package notificationRoutes

import (
	notificationController "vidya/controllers/notification"
	"vidya/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupNotificationRoutes sets up the in-app notification routes
func SetupNotificationRoutes(app *fiber.App) {
	notificationGroup := app.Group("/notifications", middleware.JWTMiddleware)

	notificationGroup.Get("/", notificationController.GetNotifications)
	notificationGroup.Patch("/:id/read", notificationController.MarkNotificationRead)
}
