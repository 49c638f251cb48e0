package progressRoutes

import (
	progressController "vidya/controllers/progress"
	"vidya/middleware"
	"vidya/models"
	progressValidator "vidya/validators/progress"

	"github.com/gofiber/fiber/v2"
)

// SetupProgressRoutes sets up the student progress tracker routes
func SetupProgressRoutes(app *fiber.App) {
	progressGroup := app.Group("/progress",
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleStudent))

	progressGroup.Post("/open", progressValidator.OpenContent(), progressController.OpenContent)
	progressGroup.Post("/video/ping", progressValidator.VideoPing(), progressController.VideoPing)
	progressGroup.Post("/complete", progressValidator.CompleteContent(), progressController.CompleteContent)
	progressGroup.Get("/list", progressValidator.ProgressList(), progressController.GetProgressList)

	// Remediation: staff can reset a stuck or corrupted record
	adminGroup := app.Group("/admin/progress",
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher))
	adminGroup.Delete("/:id", progressValidator.DeleteProgress(), progressController.AdminDeleteProgress)
}
