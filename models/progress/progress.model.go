package progress

import (
	"time"

	"gorm.io/gorm"
)

// Progress states, forward-only
const (
	StatusNotStarted = "NOT_STARTED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
)

// MaxPingSeconds caps how much watch time a single heartbeat may add.
// Bounds the damage of a delayed or fabricated ping; long real gaps are
// under-counted on purpose.
const MaxPingSeconds = 300

// Progress tracks one student's consumption of one piece of content.
// The (student, content) pair is unique; time only ever accumulates.
type Progress struct {
	gorm.Model
	StudentID   uint       `json:"student_id" gorm:"not null;uniqueIndex:idx_progress_student_content"`
	ContentID   uint       `json:"content_id" gorm:"not null;uniqueIndex:idx_progress_student_content"`
	Status      string     `json:"status" gorm:"default:'NOT_STARTED'"` // NOT_STARTED, IN_PROGRESS, COMPLETED
	TimeSpent   int64      `json:"time_spent" gorm:"default:0"`         // accumulated seconds, monotonic
	QuizScore   *int       `json:"quiz_score"`                          // 0..100 when set
	CompletedAt *time.Time `json:"completed_at"`
	IsDeleted   bool       `gorm:"default:false"`
}

// ClampPing bounds a client-reported heartbeat delta to [0, MaxPingSeconds].
func ClampPing(seconds int64) int64 {
	if seconds < 0 {
		return 0
	}
	if seconds > MaxPingSeconds {
		return MaxPingSeconds
	}
	return seconds
}

// ValidQuizScore reports whether a submitted score is inside [0, 100].
func ValidQuizScore(score int) bool {
	return score >= 0 && score <= 100
}
