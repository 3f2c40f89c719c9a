package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kelasku_backend/internals/constants"
)

func testIdentityMiddleware(c *fiber.Ctx) error {
	if v := c.Get("X-Test-User"); v != "" {
		c.Locals("user_id", v)
	}
	if v := c.Get("X-Test-Role"); v != "" {
		c.Locals("userRole", v)
	}
	return c.Next()
}

func newGradeTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	for _, ddl := range []string{
		`CREATE TABLE submissions (
			submission_id TEXT PRIMARY KEY,
			submission_user_id TEXT NOT NULL
		)`,
		`CREATE TABLE grades (
			grade_id TEXT PRIMARY KEY,
			grade_submission_id TEXT NOT NULL UNIQUE,
			grade_graded_by TEXT NOT NULL,
			grade_score INTEGER NOT NULL,
			grade_feedback TEXT,
			grade_created_at DATETIME NOT NULL,
			grade_updated_at DATETIME NOT NULL
		)`,
	} {
		require.NoError(t, db.Exec(ddl).Error)
	}

	ctrl := NewGradeController(db)
	app := fiber.New()
	app.Use(testIdentityMiddleware)

	app.Put("/api/a/submissions/:submission_id/grade", ctrl.SetGrade)
	app.Get("/api/a/submissions/:submission_id/grade", ctrl.GetBySubmission)
	app.Get("/api/u/grades/mine", ctrl.Mine)

	return app, db
}

func seedSubmission(t *testing.T, db *gorm.DB, userID uuid.UUID) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Exec(
		`INSERT INTO submissions (submission_id, submission_user_id) VALUES (?, ?)`,
		id, userID,
	).Error)
	return id
}

func doGradeReq(t *testing.T, app *fiber.App, userID uuid.UUID, role, method, path string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Test-User", userID.String())
	req.Header.Set("X-Test-Role", role)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestSetGradeUpserts(t *testing.T) {
	app, db := newGradeTestApp(t)
	grader := uuid.New()
	praktikan := uuid.New()
	submissionID := seedSubmission(t, db, praktikan)

	resp := doGradeReq(t, app, grader, constants.RoleAslab, http.MethodPut,
		"/api/a/submissions/"+submissionID.String()+"/grade", fiber.Map{
			"grade_score":    70,
			"grade_feedback": "Kurang rapi.",
		})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Nilai ulang: baris yang sama diganti, bukan baris baru.
	resp = doGradeReq(t, app, grader, constants.RoleAslab, http.MethodPut,
		"/api/a/submissions/"+submissionID.String()+"/grade", fiber.Map{
			"grade_score": 85,
		})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var cnt int64
	require.NoError(t, db.Table("grades").Count(&cnt).Error)
	require.EqualValues(t, 1, cnt)

	var score int
	require.NoError(t, db.Table("grades").
		Select("grade_score").
		Where("grade_submission_id = ?", submissionID).
		Take(&score).Error)
	require.Equal(t, 85, score)
}

func TestSetGradeMissingSubmission(t *testing.T) {
	app, _ := newGradeTestApp(t)

	resp := doGradeReq(t, app, uuid.New(), constants.RoleAslab, http.MethodPut,
		"/api/a/submissions/"+uuid.NewString()+"/grade", fiber.Map{
			"grade_score": 80,
		})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestSetGradeRejectsOutOfRangeScore(t *testing.T) {
	app, db := newGradeTestApp(t)
	submissionID := seedSubmission(t, db, uuid.New())

	resp := doGradeReq(t, app, uuid.New(), constants.RoleAslab, http.MethodPut,
		"/api/a/submissions/"+submissionID.String()+"/grade", fiber.Map{
			"grade_score": 120,
		})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestGetGradeBySubmission(t *testing.T) {
	app, db := newGradeTestApp(t)
	submissionID := seedSubmission(t, db, uuid.New())

	resp := doGradeReq(t, app, uuid.New(), constants.RoleAslab, http.MethodGet,
		"/api/a/submissions/"+submissionID.String()+"/grade", nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	now := time.Now()
	require.NoError(t, db.Exec(
		`INSERT INTO grades (grade_id, grade_submission_id, grade_graded_by, grade_score, grade_created_at, grade_updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.New(), submissionID, uuid.New(), 90, now, now,
	).Error)

	resp = doGradeReq(t, app, uuid.New(), constants.RoleAslab, http.MethodGet,
		"/api/a/submissions/"+submissionID.String()+"/grade", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var env struct {
		Data struct {
			GradeScore int `json:"grade_score"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	resp.Body.Close()
	require.Equal(t, 90, env.Data.GradeScore)
}

func TestMineReturnsOnlyOwnGrades(t *testing.T) {
	app, db := newGradeTestApp(t)
	me := uuid.New()
	other := uuid.New()

	mine := seedSubmission(t, db, me)
	theirs := seedSubmission(t, db, other)

	now := time.Now()
	for _, s := range []uuid.UUID{mine, theirs} {
		require.NoError(t, db.Exec(
			`INSERT INTO grades (grade_id, grade_submission_id, grade_graded_by, grade_score, grade_created_at, grade_updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			uuid.New(), s, uuid.New(), 75, now, now,
		).Error)
	}

	resp := doGradeReq(t, app, me, constants.RolePraktikan, http.MethodGet, "/api/u/grades/mine", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var env struct {
		Data []struct {
			GradeSubmissionID uuid.UUID `json:"grade_submission_id"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	resp.Body.Close()
	require.Len(t, env.Data, 1)
	require.Equal(t, mine, env.Data[0].GradeSubmissionID)
}
