package parentValidator

import (
	"strconv"
	"strings"

	"vidya/middleware"
	parentModels "vidya/models/parent"
	progressModels "vidya/models/progress"

	"github.com/gofiber/fiber/v2"
)

// RequestLink validates a new link request. Exactly one of child_id and
// student_code must be supplied.
func RequestLink() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(parentModels.LinkRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.StudentCode = strings.TrimSpace(reqData.StudentCode)

		hasID := reqData.ChildID != nil && *reqData.ChildID > 0
		hasCode := reqData.StudentCode != ""

		if hasID == hasCode {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"child_id": "Provide either child_id or student_code, not both!",
			})
		}

		c.Locals("validatedLinkRequest", reqData)
		return c.Next()
	}
}

// RespondLink validates an approve/reject of a link request
func RespondLink() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		linkID, err := strconv.Atoi(idStr)
		if err != nil || linkID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid link ID!", nil)
		}

		c.Locals("linkID", linkID)
		return c.Next()
	}
}

// DeleteLink validates a link removal
func DeleteLink() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		linkID, err := strconv.Atoi(idStr)
		if err != nil || linkID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid link ID!", nil)
		}

		c.Locals("linkID", linkID)
		return c.Next()
	}
}

// ChildProgress validates a parent's read of a linked student's progress
func ChildProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("student_id"))
		studentID, err := strconv.Atoi(idStr)
		if err != nil || studentID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid student ID!", nil)
		}

		reqData := new(progressModels.ListQuery)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		defaultPage := 1
		defaultLimit := 10
		if reqData.Page == nil || *reqData.Page < 1 {
			reqData.Page = &defaultPage
		}
		if reqData.Limit == nil || *reqData.Limit < 1 || *reqData.Limit > 100 {
			reqData.Limit = &defaultLimit
		}

		c.Locals("studentID", studentID)
		c.Locals("validatedProgressList", reqData)
		return c.Next()
	}
}
