package contentController

import (
	"log"

	"vidya/database"
	"vidya/middleware"
	"vidya/models"
	contentModels "vidya/models/content"
	"vidya/utils"

	"github.com/gofiber/fiber/v2"
)

// reviewContent is the shared admin transition to APPROVED or REJECTED.
// These are the only two operations that change approval status after
// creation.
func reviewContent(c *fiber.Ctx, newStatus string) error {
	adminID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	contentID := c.Locals("contentID").(int)
	reqData, _ := c.Locals("validatedReview").(*contentModels.ReviewRequest)

	var record contentModels.Content
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", contentID, false).
		First(&record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	record.ApprovalStatus = newStatus
	if reqData != nil {
		record.ReviewFeedback = reqData.Feedback
	}

	if err := database.Database.Db.Save(&record).Error; err != nil {
		log.Printf("Error reviewing content %d by admin %d: %v", record.ID, adminID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update content status!", nil)
	}

	// Tell the uploader, best effort
	if newStatus == contentModels.StatusApproved {
		utils.Notify(record.UploaderID, models.NotifyContentApproved, "Content approved",
			"\""+record.Title+"\" has been approved and is now visible to students.")
	} else {
		body := "\"" + record.Title + "\" was rejected."
		if record.ReviewFeedback != "" {
			body += " Reviewer feedback: " + record.ReviewFeedback
		}
		utils.Notify(record.UploaderID, models.NotifyContentRejected, "Content rejected", body)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content status updated successfully!", record)
}

// ApproveContent moves content to APPROVED
func ApproveContent(c *fiber.Ctx) error {
	return reviewContent(c, contentModels.StatusApproved)
}

// RejectContent moves content to REJECTED, storing reviewer feedback
func RejectContent(c *fiber.Ctx) error {
	return reviewContent(c, contentModels.StatusRejected)
}

// AdminGetContentList is the review queue listing. Unlike the user
// listing it honors the approval-status filter and includes pending and
// rejected records.
func AdminGetContentList(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, _ := c.Locals("validatedContentList").(*contentModels.ListQuery)

	page := *reqData.Page
	limit := *reqData.Limit
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&contentModels.Content{}).
		Where("is_deleted = ?", false)

	if reqData.ApprovalStatus != "" {
		db = db.Where("approval_status = ?", reqData.ApprovalStatus)
	}
	if reqData.ContentType != "" {
		db = db.Where("content_type = ?", reqData.ContentType)
	}

	var total int64
	db.Count(&total)

	var contents []contentModels.Content
	if err := db.Offset(offset).Limit(limit).Order("created_at asc").Find(&contents).Error; err != nil {
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
