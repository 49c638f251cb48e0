package parentController

import (
	"errors"
	"log"
	"time"

	"vidya/database"
	"vidya/middleware"
	"vidya/models"
	parentModels "vidya/models/parent"
	progressModels "vidya/models/progress"
	"vidya/utils"

	progressController "vidya/controllers/progress"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// notifyLinkRequest pings the student about an incoming link request.
func notifyLinkRequest(studentID uint) {
	utils.Notify(studentID, models.NotifyLinkRequest, "New parent link request",
		"A parent has requested to view your learning progress. Approve or reject the request in your account.")
}

// resolveStudent finds a live student account by id or join code.
func resolveStudent(reqData *parentModels.LinkRequest) (*models.User, error) {
	db := database.Database.Db

	var student models.User
	var err error
	if reqData.ChildID != nil {
		err = db.Where("id = ? AND role = ? AND is_deleted = ?",
			*reqData.ChildID, models.RoleStudent, false).First(&student).Error
	} else {
		err = db.Where("student_code = ? AND role = ? AND is_deleted = ?",
			reqData.StudentCode, models.RoleStudent, false).First(&student).Error
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// handleExistingLink maps an existing link's status to the
// duplicate-request response, or resets a rejected link back to pending.
func handleExistingLink(c *fiber.Ctx, link *parentModels.ParentChildLink, student *models.User) error {
	switch link.Status {
	case parentModels.StatusApproved:
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Already linked with this student!", nil)
	case parentModels.StatusPending:
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "A link request is already pending!", nil)
	}

	// Rejected: reuse the same row rather than creating a duplicate
	link.Status = parentModels.StatusPending
	link.RespondedAt = nil
	link.RequestedAt = time.Now()

	if err := database.Database.Db.Save(link).Error; err != nil {
		log.Printf("Error resetting link %d: %v", link.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to request link!", nil)
	}

	notifyLinkRequest(student.ID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Link requested successfully!", link)
}

// RequestLink creates (or revives) a pending link from the calling
// parent to a student. The unique (parent, student) index is the real
// guard against duplicate rows; an insert that trips it falls back to
// inspecting the existing record.
func RequestLink(c *fiber.Ctx) error {
	parentID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedLinkRequest").(*parentModels.LinkRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	student, err := resolveStudent(reqData)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	db := database.Database.Db

	var existing parentModels.ParentChildLink
	if err := db.Where("parent_id = ? AND student_id = ?", parentID, student.ID).
		First(&existing).Error; err == nil {
		return handleExistingLink(c, &existing, student)
	}

	link := parentModels.ParentChildLink{
		ParentID:    parentID,
		StudentID:   student.ID,
		StudentCode: student.StudentCode,
		Status:      parentModels.StatusPending,
		RequestedAt: time.Now(),
	}

	if createErr := db.Create(&link).Error; createErr != nil {
		// Concurrent duplicate request won the insert; treat it as the
		// already-exists case instead of trusting our earlier read
		if errors.Is(createErr, gorm.ErrDuplicatedKey) {
			if err := db.Where("parent_id = ? AND student_id = ?", parentID, student.ID).
				First(&existing).Error; err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to request link!", nil)
			}
			return handleExistingLink(c, &existing, student)
		}
		log.Printf("Error creating link for parent %d student %d: %v", parentID, student.ID, createErr)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to request link!", nil)
	}

	notifyLinkRequest(student.ID)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Link requested successfully!", link)
}

// respondLink is the shared student-side approve/reject transition.
func respondLink(c *fiber.Ctx, newStatus string) error {
	studentID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	linkID := c.Locals("linkID").(int)
	db := database.Database.Db

	var link parentModels.ParentChildLink
	if err := db.First(&link, linkID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Link request not found!", nil)
	}

	if link.StudentID != studentID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the linked student may respond to this request!", nil)
	}

	if link.Status != parentModels.StatusPending {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Link request has already been responded to!", nil)
	}

	now := time.Now()
	link.Status = newStatus
	link.RespondedAt = &now

	if err := db.Save(&link).Error; err != nil {
		log.Printf("Error responding to link %d: %v", link.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to respond to link request!", nil)
	}

	verdict := "approved"
	if newStatus == parentModels.StatusRejected {
		verdict = "rejected"
	}
	utils.Notify(link.ParentID, models.NotifyLinkResponse, "Link request "+verdict,
		"Your link request has been "+verdict+" by the student.")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Link request "+verdict+"!", link)
}

// ApproveLink grants the requesting parent read access
func ApproveLink(c *fiber.Ctx) error {
	return respondLink(c, parentModels.StatusApproved)
}

// RejectLink declines the request; the parent may request again later
func RejectLink(c *fiber.Ctx) error {
	return respondLink(c, parentModels.StatusRejected)
}

// DeleteLink lets the student sever a link in any state, immediately
// revoking the parent's read grant.
func DeleteLink(c *fiber.Ctx) error {
	studentID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	linkID := c.Locals("linkID").(int)
	db := database.Database.Db

	var link parentModels.ParentChildLink
	if err := db.First(&link, linkID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Link not found!", nil)
	}

	if link.StudentID != studentID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the linked student may remove this link!", nil)
	}

	// Hard delete: the pair must be free for a future fresh request
	if err := db.Unscoped().Delete(&link).Error; err != nil {
		log.Printf("Error deleting link %d: %v", link.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete link!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Link deleted successfully!", nil)
}

// GetParentLinks lists the calling parent's link requests
func GetParentLinks(c *fiber.Ctx) error {
	parentID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var links []parentModels.ParentChildLink
	if err := database.Database.Db.Where("parent_id = ?", parentID).
		Order("requested_at desc").Find(&links).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch links!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Links fetched successfully!", links)
}

// GetStudentLinks lists link requests aimed at the calling student
func GetStudentLinks(c *fiber.Ctx) error {
	studentID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var links []parentModels.ParentChildLink
	if err := database.Database.Db.Where("student_id = ?", studentID).
		Order("requested_at desc").Find(&links).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch links!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Links fetched successfully!", links)
}

// GetChildProgress serves a student's progress to a linked parent. The
// approved link is checked immediately before serving; a pending or
// rejected link grants nothing.
func GetChildProgress(c *fiber.Ctx) error {
	parentID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	studentID := c.Locals("studentID").(int)
	reqData, _ := c.Locals("validatedProgressList").(*progressModels.ListQuery)

	var link parentModels.ParentChildLink
	if err := database.Database.Db.
		Where("parent_id = ? AND student_id = ? AND status = ?",
			parentID, studentID, parentModels.StatusApproved).
		First(&link).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "No approved link with this student!", nil)
	}

	return progressController.ListProgressFor(c, uint(studentID), reqData)
}
