package progressValidator

import (
	"strconv"
	"strings"

	"vidya/middleware"
	progressModels "vidya/models/progress"

	"github.com/gofiber/fiber/v2"
)

// OpenContent validates a progress open request
func OpenContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(progressModels.OpenRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.ContentID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"content_id": "Content ID is required!",
			})
		}

		c.Locals("validatedOpen", reqData)
		return c.Next()
	}
}

// VideoPing validates a heartbeat request. The seconds value is allowed
// to be anything here; the tracker clamps it.
func VideoPing() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(progressModels.PingRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.ContentID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"content_id": "Content ID is required!",
			})
		}

		c.Locals("validatedPing", reqData)
		return c.Next()
	}
}

// CompleteContent validates a completion request
func CompleteContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(progressModels.CompleteRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.ContentID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"content_id": "Content ID is required!",
			})
		}

		if reqData.QuizScore != nil && !progressModels.ValidQuizScore(*reqData.QuizScore) {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"quiz_score": "Quiz score must be between 0 and 100!",
			})
		}

		c.Locals("validatedComplete", reqData)
		return c.Next()
	}
}

// ProgressList validates pagination for a progress listing
func ProgressList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(progressModels.ListQuery)

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		// Set defaults if not provided
		defaultPage := 1
		defaultLimit := 10
		if reqData.Page == nil || *reqData.Page < 1 {
			reqData.Page = &defaultPage
		}
		if reqData.Limit == nil || *reqData.Limit < 1 || *reqData.Limit > 100 {
			reqData.Limit = &defaultLimit
		}

		c.Locals("validatedProgressList", reqData)
		return c.Next()
	}
}

// DeleteProgress validates a remediation delete request
func DeleteProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		progressID, err := strconv.Atoi(idStr)
		if err != nil || progressID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid progress ID!", nil)
		}

		c.Locals("progressID", progressID)
		return c.Next()
	}
}
