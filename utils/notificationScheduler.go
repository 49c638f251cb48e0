package utils

import (
	"log"
	"time"

	"vidya/database"
	"vidya/models"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[NOTIFY-REAPER %s] %s", time.Now().Format(time.RFC3339), message)
}

// reapReadNotifications deletes read notifications older than 90 days.
func reapReadNotifications() {
	cutoff := time.Now().AddDate(0, 0, -90)

	result := database.Database.Db.
		Where("is_read = ? AND updated_at < ?", true, cutoff).
		Delete(&models.Notification{})
	if result.Error != nil {
		logScheduler("Error reaping notifications: " + result.Error.Error())
		return
	}
	if result.RowsAffected > 0 {
		logScheduler("Reaped old notifications")
	}
}

// StartNotificationScheduler runs the nightly notification cleanup.
func StartNotificationScheduler() {
	c := cron.New()

	// Every day at 03:00
	if _, err := c.AddFunc("0 3 * * *", reapReadNotifications); err != nil {
		logScheduler("Failed to schedule notification reaper: " + err.Error())
		return
	}

	c.Start()
	logScheduler("Notification scheduler started")
}
