package parent

import (
	"time"

	"gorm.io/gorm"
)

// Link states. REJECTED is soft-terminal: a fresh request from the same
// parent resets the row to PENDING instead of creating a duplicate.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// ParentChildLink grants a parent read access to one student's progress
// once the student approves it. At most one row per (parent, student);
// the composite unique index is the real guard against request races.
type ParentChildLink struct {
	gorm.Model
	ParentID    uint       `json:"parent_id" gorm:"not null;uniqueIndex:idx_link_parent_student"`
	StudentID   uint       `json:"student_id" gorm:"not null;uniqueIndex:idx_link_parent_student"`
	StudentCode string     `json:"student_code"` // denormalized join code at request time
	Status      string     `json:"status" gorm:"default:'PENDING'"` // PENDING, APPROVED, REJECTED
	RequestedAt time.Time  `json:"requested_at"`
	RespondedAt *time.Time `json:"responded_at"`
}
