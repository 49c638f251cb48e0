package progressController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"vidya/config"
	"vidya/database"
	"vidya/middleware"
	"vidya/models"
	contentModels "vidya/models/content"
	progressModels "vidya/models/progress"
	contentRoutes "vidya/routers/contentRoutes"
	progressRoutes "vidya/routers/progressRoutes"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	config.LoadConfig()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	progressRoutes.SetupProgressRoutes(app)
	contentRoutes.SetupContentRoutes(app)
	contentRoutes.SetupAdminContentRoutes(app)
	return app
}

func createUser(t *testing.T, role string) models.User {
	t.Helper()
	user := models.User{
		Name:     "Test " + role,
		Email:    strings.ToLower(role) + "-" + uuid.NewString() + "@vidyahub.test",
		Role:     role,
		Password: "not-used-here",
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	return user
}

func bearer(t *testing.T, user models.User) string {
	t.Helper()
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return "Bearer " + token
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	payload := make(map[string]interface{})
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	return resp.StatusCode, payload
}

func seedApprovedVideo(t *testing.T, uploader models.User) contentModels.Content {
	t.Helper()
	rec := contentModels.Content{
		Title:          "Cell division",
		ContentType:    contentModels.TypeVideo,
		StorageKey:     "content/cells.mp4",
		DurationSec:    600,
		UploaderID:     uploader.ID,
		UploaderRole:   uploader.Role,
		ApprovalStatus: contentModels.StatusApproved,
	}
	require.NoError(t, database.Database.Db.Create(&rec).Error)
	return rec
}

func data(payload map[string]interface{}) map[string]interface{} {
	d, _ := payload["data"].(map[string]interface{})
	return d
}

func TestOpenContent(t *testing.T) {
	app := setupApp(t)
	teacher := createUser(t, models.RoleTeacher)
	student := createUser(t, models.RoleStudent)
	video := seedApprovedVideo(t, teacher)

	open := map[string]interface{}{"content_id": video.ID}

	t.Run("first open creates an in-progress row", func(t *testing.T) {
		code, payload := doRequest(t, app, "POST", "/progress/open", bearer(t, student), open)

		require.Equal(t, fiber.StatusOK, code)
		assert.Equal(t, progressModels.StatusInProgress, data(payload)["status"])
		assert.Equal(t, float64(0), data(payload)["time_spent"])
	})

	t.Run("reopening is idempotent", func(t *testing.T) {
		code, payload := doRequest(t, app, "POST", "/progress/open", bearer(t, student), open)

		require.Equal(t, fiber.StatusOK, code)
		assert.Equal(t, progressModels.StatusInProgress, data(payload)["status"])

		var count int64
		database.Database.Db.Model(&progressModels.Progress{}).
			Where("student_id = ? AND content_id = ?", student.ID, video.ID).
			Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("unapproved content cannot be opened", func(t *testing.T) {
		pending := contentModels.Content{
			Title: "Not reviewed yet", ContentType: contentModels.TypeVideo,
			StorageKey: "content/x.mp4", UploaderID: teacher.ID,
			UploaderRole: teacher.Role, ApprovalStatus: contentModels.StatusPending,
		}
		require.NoError(t, database.Database.Db.Create(&pending).Error)

		code, _ := doRequest(t, app, "POST", "/progress/open", bearer(t, student),
			map[string]interface{}{"content_id": pending.ID})
		assert.Equal(t, fiber.StatusNotFound, code)
	})

	t.Run("only students open content", func(t *testing.T) {
		code, _ := doRequest(t, app, "POST", "/progress/open", bearer(t, teacher), open)
		assert.Equal(t, fiber.StatusForbidden, code)
	})
}

func TestVideoPing(t *testing.T) {
	app := setupApp(t)
	teacher := createUser(t, models.RoleTeacher)
	student := createUser(t, models.RoleStudent)
	video := seedApprovedVideo(t, teacher)

	ping := func(seconds int64) (int, map[string]interface{}) {
		return doRequest(t, app, "POST", "/progress/video/ping", bearer(t, student),
			map[string]interface{}{"content_id": video.ID, "seconds_since_last_ping": seconds})
	}

	t.Run("first ping creates the row with a clamped delta", func(t *testing.T) {
		code, payload := ping(400)

		require.Equal(t, fiber.StatusOK, code)
		assert.Equal(t, float64(progressModels.MaxPingSeconds), data(payload)["time_spent"])
		assert.Equal(t, progressModels.StatusInProgress, data(payload)["status"])
	})

	t.Run("normal heartbeat accrues as reported", func(t *testing.T) {
		code, payload := ping(50)

		require.Equal(t, fiber.StatusOK, code)
		assert.Equal(t, float64(350), data(payload)["time_spent"])
	})

	t.Run("negative delta adds nothing", func(t *testing.T) {
		code, payload := ping(-10)

		require.Equal(t, fiber.StatusOK, code)
		assert.Equal(t, float64(350), data(payload)["time_spent"])
	})

	t.Run("heartbeat advances a not-started row", func(t *testing.T) {
		other := seedApprovedVideo(t, teacher)
		require.NoError(t, database.Database.Db.Create(&progressModels.Progress{
			StudentID: student.ID, ContentID: other.ID,
			Status: progressModels.StatusNotStarted,
		}).Error)

		code, payload := doRequest(t, app, "POST", "/progress/video/ping", bearer(t, student),
			map[string]interface{}{"content_id": other.ID, "seconds_since_last_ping": 30})

		require.Equal(t, fiber.StatusOK, code)
		assert.Equal(t, progressModels.StatusInProgress, data(payload)["status"])
		assert.Equal(t, float64(30), data(payload)["time_spent"])
	})

	t.Run("ping against unknown content is not found", func(t *testing.T) {
		code, _ := doRequest(t, app, "POST", "/progress/video/ping", bearer(t, student),
			map[string]interface{}{"content_id": 99999, "seconds_since_last_ping": 30})
		assert.Equal(t, fiber.StatusNotFound, code)
	})
}

func TestCompleteContent(t *testing.T) {
	app := setupApp(t)
	teacher := createUser(t, models.RoleTeacher)
	student := createUser(t, models.RoleStudent)
	video := seedApprovedVideo(t, teacher)

	t.Run("completion requires a prior open or ping", func(t *testing.T) {
		code, _ := doRequest(t, app, "POST", "/progress/complete", bearer(t, student),
			map[string]interface{}{"content_id": video.ID})
		assert.Equal(t, fiber.StatusNotFound, code)
	})

	t.Run("out-of-range quiz score is rejected", func(t *testing.T) {
		_, _ = doRequest(t, app, "POST", "/progress/open", bearer(t, student),
			map[string]interface{}{"content_id": video.ID})

		code, _ := doRequest(t, app, "POST", "/progress/complete", bearer(t, student),
			map[string]interface{}{"content_id": video.ID, "quiz_score": 150})
		assert.Equal(t, fiber.StatusUnprocessableEntity, code)

		// The failed attempt must not have completed anything
		var record progressModels.Progress
		require.NoError(t, database.Database.Db.
			Where("student_id = ? AND content_id = ?", student.ID, video.ID).
			First(&record).Error)
		assert.Equal(t, progressModels.StatusInProgress, record.Status)
	})

	t.Run("valid completion stamps score and time", func(t *testing.T) {
		code, payload := doRequest(t, app, "POST", "/progress/complete", bearer(t, student),
			map[string]interface{}{"content_id": video.ID, "quiz_score": 80})

		require.Equal(t, fiber.StatusOK, code)
		assert.Equal(t, progressModels.StatusCompleted, data(payload)["status"])
		assert.Equal(t, float64(80), data(payload)["quiz_score"])
		assert.NotNil(t, data(payload)["completed_at"])
	})

	t.Run("repeated completion is harmless", func(t *testing.T) {
		code, payload := doRequest(t, app, "POST", "/progress/complete", bearer(t, student),
			map[string]interface{}{"content_id": video.ID, "quiz_score": 80})

		require.Equal(t, fiber.StatusOK, code)
		assert.Equal(t, progressModels.StatusCompleted, data(payload)["status"])
	})
}

// A best-effort final heartbeat from the player can land at the storage
// layer between completion's read and its write; the accrued time must
// survive.
func TestCompleteKeepsRacingHeartbeat(t *testing.T) {
	app := setupApp(t)
	teacher := createUser(t, models.RoleTeacher)
	student := createUser(t, models.RoleStudent)
	video := seedApprovedVideo(t, teacher)

	record := progressModels.Progress{
		StudentID: student.ID, ContentID: video.ID,
		Status: progressModels.StatusInProgress, TimeSpent: 100,
	}
	db := database.Database.Db
	require.NoError(t, db.Create(&record).Error)

	fired := false
	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("late_heartbeat", func(tx *gorm.DB) {
		if fired || tx.Statement.Table != "progresses" {
			return
		}
		fired = true
		tx.Session(&gorm.Session{NewDB: true}).
			Exec("UPDATE progresses SET time_spent = time_spent + ? WHERE id = ?", 50, record.ID)
	}))

	code, payload := doRequest(t, app, "POST", "/progress/complete", bearer(t, student),
		map[string]interface{}{"content_id": video.ID, "quiz_score": 70})
	require.Equal(t, fiber.StatusOK, code)
	require.True(t, fired)

	assert.Equal(t, progressModels.StatusCompleted, data(payload)["status"])
	assert.Equal(t, float64(150), data(payload)["time_spent"])
	assert.Equal(t, float64(70), data(payload)["quiz_score"])

	var reloaded progressModels.Progress
	require.NoError(t, db.First(&reloaded, record.ID).Error)
	assert.Equal(t, int64(150), reloaded.TimeSpent)
}

// Same race on the open path: advancing the status must not write back a
// stale time_spent.
func TestOpenKeepsRacingHeartbeat(t *testing.T) {
	app := setupApp(t)
	teacher := createUser(t, models.RoleTeacher)
	student := createUser(t, models.RoleStudent)
	video := seedApprovedVideo(t, teacher)

	record := progressModels.Progress{
		StudentID: student.ID, ContentID: video.ID,
		Status: progressModels.StatusNotStarted,
	}
	db := database.Database.Db
	require.NoError(t, db.Create(&record).Error)

	fired := false
	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("late_heartbeat", func(tx *gorm.DB) {
		if fired || tx.Statement.Table != "progresses" {
			return
		}
		fired = true
		tx.Session(&gorm.Session{NewDB: true}).
			Exec("UPDATE progresses SET time_spent = time_spent + ? WHERE id = ?", 50, record.ID)
	}))

	code, _ := doRequest(t, app, "POST", "/progress/open", bearer(t, student),
		map[string]interface{}{"content_id": video.ID})
	require.Equal(t, fiber.StatusOK, code)
	require.True(t, fired)

	var reloaded progressModels.Progress
	require.NoError(t, db.First(&reloaded, record.ID).Error)
	assert.Equal(t, progressModels.StatusInProgress, reloaded.Status)
	assert.Equal(t, int64(50), reloaded.TimeSpent)
}

func TestProgressList(t *testing.T) {
	app := setupApp(t)
	teacher := createUser(t, models.RoleTeacher)
	student := createUser(t, models.RoleStudent)
	video := seedApprovedVideo(t, teacher)

	require.NoError(t, database.Database.Db.Create(&progressModels.Progress{
		StudentID: student.ID, ContentID: video.ID,
		Status: progressModels.StatusInProgress, TimeSpent: 120,
	}).Error)

	// A stale row whose content was since rejected must not show up
	rejected := contentModels.Content{
		Title: "Pulled after complaints", ContentType: contentModels.TypeVideo,
		StorageKey: "content/pulled.mp4", UploaderID: teacher.ID,
		UploaderRole: teacher.Role, ApprovalStatus: contentModels.StatusRejected,
	}
	require.NoError(t, database.Database.Db.Create(&rejected).Error)
	require.NoError(t, database.Database.Db.Create(&progressModels.Progress{
		StudentID: student.ID, ContentID: rejected.ID,
		Status: progressModels.StatusInProgress, TimeSpent: 40,
	}).Error)

	code, payload := doRequest(t, app, "GET", "/progress/list", bearer(t, student), nil)
	require.Equal(t, fiber.StatusOK, code)

	rows := data(payload)["progress"].([]interface{})
	require.Len(t, rows, 1)

	first := rows[0].(map[string]interface{})
	assert.Equal(t, float64(video.ID), first["content_id"])
	assert.Equal(t, video.Title, first["content_title"])
	assert.Equal(t, contentModels.TypeVideo, first["content_type"])
}

func TestAdminDeleteProgress(t *testing.T) {
	app := setupApp(t)
	teacher := createUser(t, models.RoleTeacher)
	admin := createUser(t, models.RoleAdmin)
	student := createUser(t, models.RoleStudent)
	video := seedApprovedVideo(t, teacher)

	record := progressModels.Progress{
		StudentID: student.ID, ContentID: video.ID,
		Status: progressModels.StatusCompleted, TimeSpent: 999,
	}
	require.NoError(t, database.Database.Db.Create(&record).Error)

	t.Run("students cannot reset records", func(t *testing.T) {
		code, _ := doRequest(t, app, "DELETE", fmt.Sprintf("/admin/progress/%d", record.ID), bearer(t, student), nil)
		assert.Equal(t, fiber.StatusForbidden, code)
	})

	t.Run("admin reset frees the pair for a fresh start", func(t *testing.T) {
		code, _ := doRequest(t, app, "DELETE", fmt.Sprintf("/admin/progress/%d", record.ID), bearer(t, admin), nil)
		require.Equal(t, fiber.StatusOK, code)

		var count int64
		database.Database.Db.Model(&progressModels.Progress{}).
			Where("student_id = ? AND content_id = ?", student.ID, video.ID).
			Count(&count)
		assert.Equal(t, int64(0), count)

		// The unique index must accept the pair again
		code, payload := doRequest(t, app, "POST", "/progress/open", bearer(t, student),
			map[string]interface{}{"content_id": video.ID})
		require.Equal(t, fiber.StatusOK, code)
		assert.Equal(t, float64(0), data(payload)["time_spent"])
	})
}

// End-to-end: a teacher upload travels through review and a student works
// it to completion.
func TestContentToCompletionFlow(t *testing.T) {
	app := setupApp(t)
	teacher := createUser(t, models.RoleTeacher)
	admin := createUser(t, models.RoleAdmin)
	student := createUser(t, models.RoleStudent)

	code, payload := doRequest(t, app, "POST", "/content/", bearer(t, teacher), map[string]interface{}{
		"title":        "Long division walkthrough",
		"content_type": "VIDEO",
		"storage_key":  "content/division.mp4",
		"duration_sec": 480,
	})
	require.Equal(t, fiber.StatusCreated, code)
	contentID := uint(data(payload)["ID"].(float64))

	// Invisible to the student until approved
	code, _ = doRequest(t, app, "GET", fmt.Sprintf("/content/%d", contentID), bearer(t, student), nil)
	require.Equal(t, fiber.StatusNotFound, code)
	code, _ = doRequest(t, app, "POST", "/progress/open", bearer(t, student),
		map[string]interface{}{"content_id": contentID})
	require.Equal(t, fiber.StatusNotFound, code)

	code, _ = doRequest(t, app, "PATCH", fmt.Sprintf("/admin/content/%d/approve", contentID), bearer(t, admin), nil)
	require.Equal(t, fiber.StatusOK, code)

	code, _ = doRequest(t, app, "POST", "/progress/open", bearer(t, student),
		map[string]interface{}{"content_id": contentID})
	require.Equal(t, fiber.StatusOK, code)

	for _, seconds := range []int64{120, 120, 3600} {
		code, _ = doRequest(t, app, "POST", "/progress/video/ping", bearer(t, student),
			map[string]interface{}{"content_id": contentID, "seconds_since_last_ping": seconds})
		require.Equal(t, fiber.StatusOK, code)
	}

	code, payload = doRequest(t, app, "POST", "/progress/complete", bearer(t, student),
		map[string]interface{}{"content_id": contentID, "quiz_score": 90})
	require.Equal(t, fiber.StatusOK, code)

	assert.Equal(t, progressModels.StatusCompleted, data(payload)["status"])
	// 120 + 120 + clamped 300
	assert.Equal(t, float64(540), data(payload)["time_spent"])
	assert.Equal(t, float64(90), data(payload)["quiz_score"])
}
