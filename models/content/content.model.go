package content

import (
	"time"

	"gorm.io/gorm"

	"vidya/models"
)

// Content types
const (
	TypeFile  = "FILE"
	TypeVideo = "VIDEO"
	TypeQuiz  = "QUIZ"
	TypeGame  = "GAME"
	TypeImage = "IMAGE"
)

// Quiz sub-kinds
const (
	QuizNative   = "NATIVE"   // questions stored in quiz_questions
	QuizExternal = "EXTERNAL" // hosted elsewhere, StorageKey points at it
)

// Approval states
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Content represents a piece of learning material uploaded by a teacher
// or an admin. Approval gates its visibility to students and parents.
type Content struct {
	gorm.Model
	Title          string     `json:"title"`
	Description    string     `json:"description" gorm:"type:text"`
	Subject        string     `json:"subject" gorm:"index"`
	Grade          string     `json:"grade" gorm:"index"`
	ContentType    string     `json:"content_type" gorm:"index;not null"` // FILE, VIDEO, QUIZ, GAME, IMAGE
	QuizType       string     `json:"quiz_type"`                          // NATIVE, EXTERNAL (QUIZ only)
	StorageKey     string     `json:"storage_key"`                        // object-store key, non-quiz types
	ThumbnailKey   string     `json:"thumbnail_key"`
	DurationSec    int        `json:"duration_sec" gorm:"default:0"` // VIDEO only, as reported by uploader
	UploaderID     uint       `json:"uploader_id" gorm:"index;not null"`
	UploaderRole   string     `json:"uploader_role"`                            // TEACHER or ADMIN
	ApprovalStatus string     `json:"approval_status" gorm:"default:'PENDING'"` // PENDING, APPROVED, REJECTED
	IsAdminContent bool       `json:"is_admin_content" gorm:"default:false"`
	ReviewFeedback string     `json:"review_feedback" gorm:"type:text"`
	IsDeleted      bool       `gorm:"default:false"`
	RemovedAt      *time.Time `json:"removed_at"`
	RemovedBy      uint       `json:"removed_by" gorm:"default:0"`
}

// QuizQuestion is a single question of a NATIVE quiz. Every question has
// exactly four options.
type QuizQuestion struct {
	gorm.Model
	ContentID     uint   `json:"content_id" gorm:"index;not null"`
	Prompt        string `json:"prompt" gorm:"type:text"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectOption int    `json:"correct_option"` // 0..3
	OrderIndex    int    `json:"order_index" gorm:"default:0"`
	IsDeleted     bool   `gorm:"default:false"`
}

// DraftQuestion is one question of a native quiz draft.
type DraftQuestion struct {
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
}

// Draft is the client-supplied part of a new content record. Approval
// fields are deliberately absent; they are derived from the caller role.
type Draft struct {
	Title        string          `json:"title" validate:"required,min=3,max=150"`
	Description  string          `json:"description" validate:"max=2000"`
	Subject      string          `json:"subject" validate:"max=100"`
	Grade        string          `json:"grade" validate:"max=50"`
	ContentType  string          `json:"content_type" validate:"required,oneof=FILE VIDEO QUIZ GAME IMAGE"`
	QuizType     string          `json:"quiz_type" validate:"omitempty,oneof=NATIVE EXTERNAL"`
	StorageKey   string          `json:"storage_key"`
	ThumbnailKey string          `json:"thumbnail_key"`
	DurationSec  int             `json:"duration_sec" validate:"min=0"`
	Questions    []DraftQuestion `json:"questions"`
}

// NewForRole builds the initial record for a draft. Admin uploads go
// live immediately; teacher uploads always start pending review.
func NewForRole(role string, uploaderID uint, draft *Draft) Content {
	rec := Content{
		Title:        draft.Title,
		Description:  draft.Description,
		Subject:      draft.Subject,
		Grade:        draft.Grade,
		ContentType:  draft.ContentType,
		QuizType:     draft.QuizType,
		StorageKey:   draft.StorageKey,
		ThumbnailKey: draft.ThumbnailKey,
		DurationSec:  draft.DurationSec,
		UploaderID:   uploaderID,
		UploaderRole: role,
	}

	if role == models.RoleAdmin {
		rec.ApprovalStatus = StatusApproved
		rec.IsAdminContent = true
	} else {
		rec.ApprovalStatus = StatusPending
		rec.IsAdminContent = false
	}
	return rec
}

// VisibleTo is the mandatory visibility scope for every content read
// path. Students and parents only ever see approved content; a teacher
// additionally sees their own uploads in any state; admins see all.
// New read endpoints must go through this scope.
func VisibleTo(role string, userID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("contents.is_deleted = ?", false)
		switch role {
		case models.RoleAdmin:
			return db
		case models.RoleTeacher:
			return db.Where("contents.approval_status = ? OR contents.uploader_id = ?", StatusApproved, userID)
		default:
			return db.Where("contents.approval_status = ?", StatusApproved)
		}
	}
}

// ApprovedOnly narrows any content join to live, reviewed records. Used
// by progress listings so a since-rejected or deleted piece of content
// never leaks through a stale progress row.
func ApprovedOnly(db *gorm.DB) *gorm.DB {
	return db.Where("contents.approval_status = ? AND contents.is_deleted = ?", StatusApproved, false)
}

// ValidateDraft checks the per-type required fields of a draft. Returns
// a field -> message map, empty when the draft is acceptable.
func ValidateDraft(draft *Draft) map[string]string {
	errors := make(map[string]string)

	switch draft.ContentType {
	case TypeQuiz:
		if draft.QuizType == "" {
			errors["quiz_type"] = "Quiz type is required for quiz content!"
		}
		if draft.QuizType == QuizNative {
			if len(draft.Questions) == 0 {
				errors["questions"] = "Native quiz requires at least one question!"
			}
			for _, q := range draft.Questions {
				if len(q.Options) != 4 {
					errors["questions"] = "Each question must have exactly four options!"
					break
				}
				if q.CorrectOption < 0 || q.CorrectOption > 3 {
					errors["questions"] = "Correct option index must be between 0 and 3!"
					break
				}
				if q.Prompt == "" {
					errors["questions"] = "Question prompt is required!"
					break
				}
			}
		}
	case TypeFile, TypeVideo, TypeGame, TypeImage:
		if draft.StorageKey == "" {
			errors["storage_key"] = "Storage key is required for this content type!"
		}
	}

	return errors
}
