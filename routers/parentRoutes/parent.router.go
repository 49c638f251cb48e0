package parentRoutes

import (
	parentController "vidya/controllers/parent"
	"vidya/middleware"
	"vidya/models"
	parentValidator "vidya/validators/parent"

	"github.com/gofiber/fiber/v2"
)

// SetupParentRoutes sets up parent-child linking routes. Requests come
// from parents; responding to or severing a link belongs to the
// student, even though the resource lives under /parent/links.
func SetupParentRoutes(app *fiber.App) {
	parentGroup := app.Group("/parent", middleware.JWTMiddleware)

	parentGroup.Post("/links",
		middleware.RequireRoles(models.RoleParent),
		parentValidator.RequestLink(),
		parentController.RequestLink)
	parentGroup.Get("/links",
		middleware.RequireRoles(models.RoleParent),
		parentController.GetParentLinks)
	parentGroup.Get("/children/:student_id/progress",
		middleware.RequireRoles(models.RoleParent),
		parentValidator.ChildProgress(),
		parentController.GetChildProgress)

	parentGroup.Patch("/links/:id/approve",
		middleware.RequireRoles(models.RoleStudent),
		parentValidator.RespondLink(),
		parentController.ApproveLink)
	parentGroup.Patch("/links/:id/reject",
		middleware.RequireRoles(models.RoleStudent),
		parentValidator.RespondLink(),
		parentController.RejectLink)
	parentGroup.Delete("/links/:id",
		middleware.RequireRoles(models.RoleStudent),
		parentValidator.DeleteLink(),
		parentController.DeleteLink)

	// Incoming requests, student side
	studentGroup := app.Group("/student",
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleStudent))
	studentGroup.Get("/links", parentController.GetStudentLinks)
}
