package models

import "gorm.io/gorm"

// Notification kinds emitted on state transitions
const (
	NotifyContentPending  = "CONTENT_PENDING"
	NotifyContentApproved = "CONTENT_APPROVED"
	NotifyContentRejected = "CONTENT_REJECTED"
	NotifyLinkRequest     = "LINK_REQUEST"
	NotifyLinkResponse    = "LINK_RESPONSE"
)

// Notification is a per-user in-app notification row. Delivery by email
// is best effort; the row is the source of truth.
type Notification struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	Body      string `json:"body" gorm:"type:text"`
	IsRead    bool   `json:"is_read" gorm:"default:false"`
	IsDeleted bool   `gorm:"default:false"`
}
