package contentRoutes

import (
	contentController "vidya/controllers/content"
	"vidya/middleware"
	"vidya/models"
	contentValidator "vidya/validators/content"

	"github.com/gofiber/fiber/v2"
)

// SetupContentRoutes sets up content lifecycle routes. Every read goes
// through the visibility scope inside the controllers; approval
// transitions live under /admin.
func SetupContentRoutes(app *fiber.App) {
	contentGroup := app.Group("/content")

	// Submission and upload presign: uploaders only
	contentGroup.Post("/",
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleTeacher, models.RoleAdmin),
		contentValidator.CreateContent(),
		contentController.SubmitContent)
	contentGroup.Post("/upload-url",
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleTeacher, models.RoleAdmin),
		contentValidator.UploadURL(),
		contentController.GetUploadURL)

	// Reads: any authenticated role, scoped server-side
	contentGroup.Get("/list", middleware.JWTMiddleware, contentValidator.ContentList(), contentController.GetContentList)
	contentGroup.Get("/:id", middleware.JWTMiddleware, contentValidator.ContentDetail(), contentController.GetContentDetails)

	// Edits and deletes: role/state gated in the controller
	contentGroup.Patch("/:id",
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleTeacher, models.RoleAdmin),
		contentValidator.UpdateContent(),
		contentController.UpdateContent)
	contentGroup.Delete("/:id",
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleTeacher, models.RoleAdmin),
		contentValidator.ContentDetail(),
		contentController.DeleteContent)
}

// SetupAdminContentRoutes sets up the admin review queue
func SetupAdminContentRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/content",
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleAdmin))

	adminGroup.Get("/list", contentValidator.ContentList(), contentController.AdminGetContentList)
	adminGroup.Patch("/:id/approve", contentValidator.ReviewContent(), contentController.ApproveContent)
	adminGroup.Patch("/:id/reject", contentValidator.ReviewContent(), contentController.RejectContent)
}
