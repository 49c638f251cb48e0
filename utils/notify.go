package utils

import (
	"fmt"
	"log"

	"vidya/database"
	"vidya/models"
)

// Notify records an in-app notification for a user and fires a
// best-effort email. The caller's state transition never fails because
// of a notification problem; errors are only logged.
func Notify(userID uint, kind, title, body string) {
	notification := models.Notification{
		UserID: userID,
		Kind:   kind,
		Title:  title,
		Body:   body,
	}
	if err := database.Database.Db.Create(&notification).Error; err != nil {
		log.Printf("Failed to store notification for user %d: %v", userID, err)
	}

	go func() {
		var user models.User
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			return
		}
		if user.Email == "" {
			return
		}
		html := getEmailTemplate(title, fmt.Sprintf("<p>%s</p>", body))
		if err := SendEmail([]string{user.Email}, title, html); err != nil {
			log.Printf("Failed to send notification email to %s: %v", user.Email, err)
		}
	}()
}

// NotifyAdmins fans a notification out to every admin account. Used for
// new teacher submissions awaiting review.
func NotifyAdmins(kind, title, body string) {
	var admins []models.User
	if err := database.Database.Db.Where("role = ? AND is_deleted = ?", models.RoleAdmin, false).Find(&admins).Error; err != nil {
		log.Printf("Failed to load admins for notification: %v", err)
		return
	}
	for _, admin := range admins {
		Notify(admin.ID, kind, title, body)
	}
}
