package contentValidator

import (
	"strconv"
	"strings"

	"vidya/middleware"
	contentModels "vidya/models/content"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// structErrors turns validator.v10 failures into the field->message map
// used by ValidationErrorResponse.
func structErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			errors[strings.ToLower(fe.Field())] = "Invalid value for " + fe.Field() + " (" + fe.Tag() + ")!"
		}
	} else {
		errors["body"] = "Invalid request body!"
	}
	return errors
}

// parseIDParam validates a positive integer route parameter.
func parseIDParam(c *fiber.Ctx, name string) (int, bool) {
	raw := strings.TrimSpace(c.Params(name))
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// CreateContent validates a new content draft
func CreateContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		draft := new(contentModels.Draft)

		if err := c.BodyParser(draft); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		draft.Title = strings.TrimSpace(draft.Title)
		draft.Description = strings.TrimSpace(draft.Description)

		if err := validate.Struct(draft); err != nil {
			return middleware.ValidationErrorResponse(c, structErrors(err))
		}

		// Per-type requirements (storage key, quiz kind, question shape)
		if errors := contentModels.ValidateDraft(draft); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedDraft", draft)
		return c.Next()
	}
}

// UpdateContent validates a content patch
func UpdateContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		contentID, ok := parseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content ID!", nil)
		}

		patch := new(contentModels.Patch)
		if err := c.BodyParser(patch); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(patch); err != nil {
			return middleware.ValidationErrorResponse(c, structErrors(err))
		}

		c.Locals("contentID", contentID)
		c.Locals("validatedContentPatch", patch)
		return c.Next()
	}
}

// ContentDetail validates a content detail request
func ContentDetail() fiber.Handler {
	return func(c *fiber.Ctx) error {
		contentID, ok := parseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content ID!", nil)
		}

		c.Locals("contentID", contentID)
		return c.Next()
	}
}

// ContentList validates listing filters and pagination
func ContentList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(contentModels.ListQuery)

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

		c.Locals("validatedContentList", reqData)
		return c.Next()
	}
}

// ReviewContent validates an approve/reject request
func ReviewContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		contentID, ok := parseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content ID!", nil)
		}

		reqData := new(contentModels.ReviewRequest)
		// Feedback body is optional on approve
		if len(c.Body()) > 0 {
			if err := c.BodyParser(reqData); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
			}
		}
		reqData.Feedback = strings.TrimSpace(reqData.Feedback)

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, structErrors(err))
		}

		c.Locals("contentID", contentID)
		c.Locals("validatedReview", reqData)
		return c.Next()
	}
}

// UploadURL validates a presign request
func UploadURL() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(contentModels.UploadRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Filename = strings.TrimSpace(reqData.Filename)
		reqData.ContentType = strings.TrimSpace(reqData.ContentType)

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, structErrors(err))
		}

		c.Locals("validatedUpload", reqData)
		return c.Next()
	}
}
