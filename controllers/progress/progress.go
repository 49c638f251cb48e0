package progressController

import (
	"errors"
	"log"
	"time"

	"vidya/database"
	"vidya/middleware"
	contentModels "vidya/models/content"
	progressModels "vidya/models/progress"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ProgressWithContent joins a progress row with its content summary
type ProgressWithContent struct {
	progressModels.Progress
	ContentTitle string `json:"content_title"`
	ContentType  string `json:"content_type"`
}

// findOpenableContent resolves content that a student may consume.
// Anything unapproved or deleted is reported as not found, matching the
// content view contract.
func findOpenableContent(contentID uint) (*contentModels.Content, error) {
	var record contentModels.Content
	err := database.Database.Db.
		Where("id = ? AND approval_status = ? AND is_deleted = ?",
			contentID, contentModels.StatusApproved, false).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// OpenContent finds or creates the progress row for (student, content)
// and advances it to IN_PROGRESS. Safe to call any number of times.
func OpenContent(c *fiber.Ctx) error {
	studentID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedOpen").(*progressModels.OpenRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if _, err := findOpenableContent(reqData.ContentID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	db := database.Database.Db

	var record progressModels.Progress
	err := db.Where("student_id = ? AND content_id = ? AND is_deleted = ?",
		studentID, reqData.ContentID, false).First(&record).Error

	if err != nil {
		record = progressModels.Progress{
			StudentID: studentID,
			ContentID: reqData.ContentID,
			Status:    progressModels.StatusInProgress,
		}
		if createErr := db.Create(&record).Error; createErr != nil {
			// A concurrent open from the same client already created the
			// row; reuse it
			if errors.Is(createErr, gorm.ErrDuplicatedKey) {
				if refetch := db.Where("student_id = ? AND content_id = ?",
					studentID, reqData.ContentID).First(&record).Error; refetch != nil {
					return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to open content!", nil)
				}
			} else {
				log.Printf("Error creating progress for student %d content %d: %v", studentID, reqData.ContentID, createErr)
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to open content!", nil)
			}
		}
	}

	// Status only ever moves forward. Column-scoped so a heartbeat that
	// landed after the read above keeps its time_spent increment.
	if record.Status == progressModels.StatusNotStarted {
		if err := db.Model(&progressModels.Progress{}).
			Where("id = ? AND status = ?", record.ID, progressModels.StatusNotStarted).
			UpdateColumn("status", progressModels.StatusInProgress).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to open content!", nil)
		}
		record.Status = progressModels.StatusInProgress
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content opened successfully!", record)
}

// VideoPing accrues watch time from a heartbeat. The reported delta is
// clamped to [0, 300] seconds and added with an atomic increment, so
// concurrent pings from two tabs never lose or double an update.
func VideoPing(c *fiber.Ctx) error {
	studentID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedPing").(*progressModels.PingRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if _, err := findOpenableContent(reqData.ContentID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	delta := progressModels.ClampPing(reqData.SecondsSinceLastPing)
	db := database.Database.Db

	var record progressModels.Progress
	err := db.Where("student_id = ? AND content_id = ? AND is_deleted = ?",
		studentID, reqData.ContentID, false).First(&record).Error

	if err != nil {
		// First heartbeat creates the row
		record = progressModels.Progress{
			StudentID: studentID,
			ContentID: reqData.ContentID,
			Status:    progressModels.StatusInProgress,
			TimeSpent: delta,
		}
		createErr := db.Create(&record).Error
		if createErr == nil {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", record)
		}
		if !errors.Is(createErr, gorm.ErrDuplicatedKey) {
			log.Printf("Error creating progress for student %d content %d: %v", studentID, reqData.ContentID, createErr)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
		}
		// Lost the race against a concurrent ping; fall through to the
		// increment path
		if refetch := db.Where("student_id = ? AND content_id = ?",
			studentID, reqData.ContentID).First(&record).Error; refetch != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
		}
	}

	// Increment at the storage layer; a read-modify-write here would be
	// racy under concurrent heartbeats
	updates := db.Model(&progressModels.Progress{}).
		Where("id = ?", record.ID).
		UpdateColumn("time_spent", gorm.Expr("time_spent + ?", delta))
	if updates.Error != nil {
		log.Printf("Error incrementing time for progress %d: %v", record.ID, updates.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	if record.Status == progressModels.StatusNotStarted {
		if err := db.Model(&progressModels.Progress{}).
			Where("id = ? AND status = ?", record.ID, progressModels.StatusNotStarted).
			UpdateColumn("status", progressModels.StatusInProgress).Error; err != nil {
			log.Printf("Error advancing status for progress %d: %v", record.ID, err)
		}
	}

	if err := db.First(&record, record.ID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", record)
}

// CompleteContent marks a progress row completed. The row must already
// exist; completion cannot be conjured without a prior open or ping.
// Calling it again just re-stamps, which is harmless.
func CompleteContent(c *fiber.Ctx) error {
	studentID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedComplete").(*progressModels.CompleteRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var record progressModels.Progress
	if err := db.Where("student_id = ? AND content_id = ? AND is_deleted = ?",
		studentID, reqData.ContentID, false).First(&record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No progress found for this content!", nil)
	}

	// Only the columns completion owns; a full-row save would overwrite
	// time_spent incremented by a heartbeat racing this call
	now := time.Now()
	updates := map[string]interface{}{
		"status":       progressModels.StatusCompleted,
		"completed_at": &now,
	}
	if reqData.QuizScore != nil {
		updates["quiz_score"] = reqData.QuizScore
	}

	if err := db.Model(&record).Updates(updates).Error; err != nil {
		log.Printf("Error completing progress %d: %v", record.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to complete content!", nil)
	}

	if err := db.First(&record, record.ID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to complete content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content completed successfully!", record)
}

// ListProgressFor builds the joined, approved-only progress listing for
// one student. Shared between the student's own view and the gated
// parent view.
func ListProgressFor(c *fiber.Ctx, studentID uint, reqData *progressModels.ListQuery) error {
	page := *reqData.Page
	limit := *reqData.Limit
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&progressModels.Progress{}).
		Joins("JOIN contents ON contents.id = progresses.content_id").
		Scopes(contentModels.ApprovedOnly).
		Where("progresses.student_id = ? AND progresses.is_deleted = ?", studentID, false)

	var total int64
	db.Count(&total)

	var rows []progressModels.Progress
	if err := db.Offset(offset).Limit(limit).Order("progresses.updated_at desc").Find(&rows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	result := make([]ProgressWithContent, len(rows))
	for i, row := range rows {
		result[i] = ProgressWithContent{Progress: row}

		var record contentModels.Content
		if err := database.Database.Db.First(&record, row.ContentID).Error; err == nil {
			result[i].ContentTitle = record.Title
			result[i].ContentType = record.ContentType
		}
	}

	response := map[string]interface{}{
		"progress": result,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", response)
}

// GetProgressList returns the caller's own progress rows
func GetProgressList(c *fiber.Ctx) error {
	studentID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, _ := c.Locals("validatedProgressList").(*progressModels.ListQuery)
	return ListProgressFor(c, studentID, reqData)
}

// AdminDeleteProgress hard-deletes a progress row for remediation. The
// unique (student, content) index would otherwise block a fresh start.
func AdminDeleteProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	progressID := c.Locals("progressID").(int)

	var record progressModels.Progress
	if err := database.Database.Db.First(&record, progressID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Progress record not found!", nil)
	}

	if err := database.Database.Db.Unscoped().Delete(&record).Error; err != nil {
		log.Printf("Error deleting progress %d by user %d: %v", record.ID, userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete progress record!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress record deleted successfully!", nil)
}
