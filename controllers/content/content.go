package contentController

import (
	"log"
	"time"

	"vidya/database"
	"vidya/middleware"
	"vidya/models"
	contentModels "vidya/models/content"
	"vidya/utils"

	"github.com/gofiber/fiber/v2"
)

// ContentWithQuestions is the detail payload for native quizzes
type ContentWithQuestions struct {
	contentModels.Content
	Questions []contentModels.QuizQuestion `json:"questions,omitempty"`
}

// SubmitContent creates a new content record. Approval state is derived
// from the caller role, never from the body: admin uploads go live
// immediately, teacher uploads start pending and ping the review queue.
func SubmitContent(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(string)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	draft, ok := c.Locals("validatedDraft").(*contentModels.Draft)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	record := contentModels.NewForRole(role, userID, draft)

	tx := database.Database.Db.Begin()
	if err := tx.Create(&record).Error; err != nil {
		tx.Rollback()
		log.Printf("Error creating content: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create content!", nil)
	}

	if record.ContentType == contentModels.TypeQuiz && record.QuizType == contentModels.QuizNative {
		for i, q := range draft.Questions {
			question := contentModels.QuizQuestion{
				ContentID:     record.ID,
				Prompt:        q.Prompt,
				OptionA:       q.Options[0],
				OptionB:       q.Options[1],
				OptionC:       q.Options[2],
				OptionD:       q.Options[3],
				CorrectOption: q.CorrectOption,
				OrderIndex:    i,
			}
			if err := tx.Create(&question).Error; err != nil {
				tx.Rollback()
				log.Printf("Error creating quiz question: %v", err)
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create content!", nil)
			}
		}
	}
	tx.Commit()

	// Teacher submissions wait for review; tell the reviewers
	if record.ApprovalStatus == contentModels.StatusPending {
		utils.NotifyAdmins(models.NotifyContentPending, "New content awaiting review",
			"\""+record.Title+"\" was submitted by "+user.Name+" and is awaiting approval.")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Content submitted successfully!", record)
}

// GetContentDetails returns one content record if the caller may see it.
// Unapproved content is reported as not found, not as forbidden.
func GetContentDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(string)

	contentID := c.Locals("contentID").(int)

	var record contentModels.Content
	if err := database.Database.Db.
		Scopes(contentModels.VisibleTo(role, userID)).
		Where("contents.id = ?", contentID).
		First(&record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	result := ContentWithQuestions{Content: record}

	if record.ContentType == contentModels.TypeQuiz && record.QuizType == contentModels.QuizNative {
		var questions []contentModels.QuizQuestion
		database.Database.Db.
			Where("content_id = ? AND is_deleted = ?", record.ID, false).
			Order("order_index asc").
			Find(&questions)

		// Hide answers from everyone but the author and admins
		if role != models.RoleAdmin && record.UploaderID != userID {
			for i := range questions {
				questions[i].CorrectOption = -1
			}
		}
		result.Questions = questions
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content fetched successfully!", result)
}

// GetContentList lists content through the visibility scope. Students
// and parents only ever get approved records no matter what filters
// they send.
func GetContentList(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(string)

	reqData, _ := c.Locals("validatedContentList").(*contentModels.ListQuery)

	page := *reqData.Page
	limit := *reqData.Limit
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&contentModels.Content{}).
		Scopes(contentModels.VisibleTo(role, userID))

	if reqData.ContentType != "" {
		db = db.Where("contents.content_type = ?", reqData.ContentType)
	}
	if reqData.Subject != "" {
		db = db.Where("contents.subject = ?", reqData.Subject)
	}
	if reqData.Grade != "" {
		db = db.Where("contents.grade = ?", reqData.Grade)
	}
	// Approval filter is admin-only; the scope already pinned everyone
	// else to approved
	if reqData.ApprovalStatus != "" && role == models.RoleAdmin {
		db = db.Where("contents.approval_status = ?", reqData.ApprovalStatus)
	}

	var total int64
	db.Count(&total)

	var contents []contentModels.Content
	if err := db.Offset(offset).Limit(limit).Order("contents.created_at desc").Find(&contents).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch content!", nil)
	}

	response := map[string]interface{}{
		"contents": contents,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content fetched successfully!", response)
}

// UpdateContent patches a record. Admins may always edit; a teacher may
// only edit their own content while it is still pending review.
func UpdateContent(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(string)

	contentID := c.Locals("contentID").(int)
	patch, ok := c.Locals("validatedContentPatch").(*contentModels.Patch)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var record contentModels.Content
	if err := database.Database.Db.
		Scopes(contentModels.VisibleTo(role, userID)).
		Where("contents.id = ?", contentID).
		First(&record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	if role != models.RoleAdmin {
		if record.UploaderID != userID {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You may only edit your own content!", nil)
		}
		if record.ApprovalStatus != contentModels.StatusPending {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Content can no longer be edited after review!", nil)
		}
	}

	if patch.Title != nil {
		record.Title = *patch.Title
	}
	if patch.Description != nil {
		record.Description = *patch.Description
	}
	if patch.Subject != nil {
		record.Subject = *patch.Subject
	}
	if patch.Grade != nil {
		record.Grade = *patch.Grade
	}
	if patch.StorageKey != nil {
		record.StorageKey = *patch.StorageKey
	}
	if patch.ThumbnailKey != nil {
		record.ThumbnailKey = *patch.ThumbnailKey
	}
	if patch.DurationSec != nil {
		record.DurationSec = *patch.DurationSec
	}

	if err := database.Database.Db.Save(&record).Error; err != nil {
		log.Printf("Error updating content %d: %v", record.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content updated successfully!", record)
}

// DeleteContent soft-deletes a record. Admins may delete in any state; a
// teacher only their own pending uploads. Nothing is ever hard-deleted.
func DeleteContent(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(string)

	contentID := c.Locals("contentID").(int)

	var record contentModels.Content
	if err := database.Database.Db.
		Scopes(contentModels.VisibleTo(role, userID)).
		Where("contents.id = ?", contentID).
		First(&record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	if role != models.RoleAdmin {
		if record.UploaderID != userID {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You may only delete your own content!", nil)
		}
		if record.ApprovalStatus != contentModels.StatusPending {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Content can no longer be deleted after review!", nil)
		}
	}

	now := time.Now()
	record.IsDeleted = true
	record.RemovedAt = &now
	record.RemovedBy = userID

	if err := database.Database.Db.Save(&record).Error; err != nil {
		log.Printf("Error deleting content %d: %v", record.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content deleted successfully!", nil)
}

// GetUploadURL is a pass-through to the object-store presign service.
func GetUploadURL(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedUpload").(*contentModels.UploadRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	key := utils.GenerateObjectKey("content", reqData.Filename)
	result, err := utils.GetUploadURL(key, reqData.ContentType)
	if err != nil {
		log.Printf("Presign request failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to get upload URL!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Upload URL generated successfully!", result)
}
