package content

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vidya/models"
)

func TestNewForRole(t *testing.T) {
	draft := &Draft{
		Title:       "Fractions introduction",
		ContentType: TypeVideo,
		StorageKey:  "content/abc.mp4",
	}

	t.Run("teacher uploads start pending", func(t *testing.T) {
		rec := NewForRole(models.RoleTeacher, 7, draft)

		assert.Equal(t, StatusPending, rec.ApprovalStatus)
		assert.False(t, rec.IsAdminContent)
		assert.Equal(t, uint(7), rec.UploaderID)
		assert.Equal(t, models.RoleTeacher, rec.UploaderRole)
	})

	t.Run("admin uploads go live immediately", func(t *testing.T) {
		rec := NewForRole(models.RoleAdmin, 3, draft)

		assert.Equal(t, StatusApproved, rec.ApprovalStatus)
		assert.True(t, rec.IsAdminContent)
		assert.Equal(t, models.RoleAdmin, rec.UploaderRole)
	})
}

func TestValidateDraft(t *testing.T) {
	question := func(options int, correct int) DraftQuestion {
		opts := make([]string, options)
		for i := range opts {
			opts[i] = "option"
		}
		return DraftQuestion{Prompt: "What is 2+2?", Options: opts, CorrectOption: correct}
	}

	t.Run("non-quiz types require a storage key", func(t *testing.T) {
		draft := &Draft{Title: "Worksheet", ContentType: TypeFile}
		errs := ValidateDraft(draft)
		assert.Contains(t, errs, "storage_key")

		draft.StorageKey = "content/sheet.pdf"
		assert.Empty(t, ValidateDraft(draft))
	})

	t.Run("quiz requires a sub-kind", func(t *testing.T) {
		draft := &Draft{Title: "Quiz", ContentType: TypeQuiz}
		errs := ValidateDraft(draft)
		assert.Contains(t, errs, "quiz_type")
	})

	t.Run("native quiz requires at least one question", func(t *testing.T) {
		draft := &Draft{Title: "Quiz", ContentType: TypeQuiz, QuizType: QuizNative}
		errs := ValidateDraft(draft)
		assert.Contains(t, errs, "questions")
	})

	t.Run("questions need exactly four options", func(t *testing.T) {
		draft := &Draft{Title: "Quiz", ContentType: TypeQuiz, QuizType: QuizNative}
		draft.Questions = append(draft.Questions, question(3, 0))
		errs := ValidateDraft(draft)
		assert.Contains(t, errs, "questions")
	})

	t.Run("correct option must be in range", func(t *testing.T) {
		draft := &Draft{Title: "Quiz", ContentType: TypeQuiz, QuizType: QuizNative}
		draft.Questions = append(draft.Questions, question(4, 4))
		errs := ValidateDraft(draft)
		assert.Contains(t, errs, "questions")
	})

	t.Run("well-formed native quiz passes", func(t *testing.T) {
		draft := &Draft{Title: "Quiz", ContentType: TypeQuiz, QuizType: QuizNative}
		draft.Questions = append(draft.Questions, question(4, 2))
		assert.Empty(t, ValidateDraft(draft))
	})

	t.Run("external quiz needs no questions", func(t *testing.T) {
		draft := &Draft{Title: "Quiz", ContentType: TypeQuiz, QuizType: QuizExternal}
		assert.Empty(t, ValidateDraft(draft))
	})
}
