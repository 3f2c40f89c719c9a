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

func newClassTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec(`CREATE TABLE classes (
		class_id TEXT PRIMARY KEY,
		class_name TEXT NOT NULL,
		class_description TEXT,
		class_schedule TEXT,
		class_created_by TEXT NOT NULL,
		class_created_at DATETIME NOT NULL,
		class_updated_at DATETIME NOT NULL
	)`).Error)

	ctrl := NewClassController(db)
	app := fiber.New()
	app.Use(testIdentityMiddleware)

	app.Get("/api/u/classes", ctrl.List)
	app.Get("/api/u/classes/:id", ctrl.GetByID)
	app.Post("/api/a/classes", ctrl.Create)
	app.Put("/api/a/classes/:id", ctrl.Update)
	app.Delete("/api/a/classes/:id", ctrl.Delete)

	return app, db
}

func doClassReq(t *testing.T, app *fiber.App, userID uuid.UUID, method, path string, body any) *http.Response {
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
	if userID != uuid.Nil {
		req.Header.Set("X-Test-User", userID.String())
		req.Header.Set("X-Test-Role", constants.RoleAslab)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestClassCRUD(t *testing.T) {
	app, db := newClassTestApp(t)
	aslabID := uuid.New()

	// Create
	resp := doClassReq(t, app, aslabID, http.MethodPost, "/api/a/classes", fiber.Map{
		"class_name":     "Jaringan Komputer",
		"class_schedule": "Senin 08:00",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var env struct {
		Data struct {
			ClassID        uuid.UUID `json:"class_id"`
			ClassName      string    `json:"class_name"`
			ClassCreatedBy uuid.UUID `json:"class_created_by"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	resp.Body.Close()
	require.Equal(t, "Jaringan Komputer", env.Data.ClassName)
	require.Equal(t, aslabID, env.Data.ClassCreatedBy)

	classID := env.Data.ClassID

	// Detail
	resp = doClassReq(t, app, aslabID, http.MethodGet, "/api/u/classes/"+classID.String(), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Update
	resp = doClassReq(t, app, aslabID, http.MethodPut, "/api/a/classes/"+classID.String(), fiber.Map{
		"class_name": "Jaringan Komputer Lanjut",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var name string
	require.NoError(t, db.Table("classes").
		Select("class_name").
		Where("class_id = ?", classID).
		Take(&name).Error)
	require.Equal(t, "Jaringan Komputer Lanjut", name)

	// Delete
	resp = doClassReq(t, app, aslabID, http.MethodDelete, "/api/a/classes/"+classID.String(), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var cnt int64
	require.NoError(t, db.Table("classes").Count(&cnt).Error)
	require.EqualValues(t, 0, cnt)
}

func TestClassNotFound(t *testing.T) {
	app, _ := newClassTestApp(t)
	aslabID := uuid.New()

	resp := doClassReq(t, app, aslabID, http.MethodGet, "/api/u/classes/"+uuid.NewString(), nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doClassReq(t, app, aslabID, http.MethodDelete, "/api/a/classes/"+uuid.NewString(), nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestClassCreateValidation(t *testing.T) {
	app, _ := newClassTestApp(t)

	resp := doClassReq(t, app, uuid.New(), http.MethodPost, "/api/a/classes", fiber.Map{
		"class_name": "ab", // terlalu pendek
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestClassListSearchAndPaging(t *testing.T) {
	app, db := newClassTestApp(t)
	aslabID := uuid.New()

	now := time.Now()
	for _, name := range []string{"Basis Data", "Basis Data Lanjut", "Kalkulus"} {
		require.NoError(t, db.Exec(
			`INSERT INTO classes (class_id, class_name, class_created_by, class_created_at, class_updated_at)
			 VALUES (?, ?, ?, ?, ?)`,
			uuid.New(), name, aslabID, now, now,
		).Error)
	}

	resp := doClassReq(t, app, aslabID, http.MethodGet, "/api/u/classes?q=basis", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var env struct {
		Data       []json.RawMessage `json:"data"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	resp.Body.Close()
	require.Len(t, env.Data, 2)
	require.EqualValues(t, 2, env.Pagination.Total)
}
