package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
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

// Identitas disuntik lewat header test, meniru locals yang diisi AuthMiddleware.
func testIdentityMiddleware(c *fiber.Ctx) error {
	if v := c.Get("X-Test-User"); v != "" {
		c.Locals("user_id", v)
	}
	if v := c.Get("X-Test-Role"); v != "" {
		c.Locals("userRole", v)
	}
	if v := c.Get("X-Test-Name"); v != "" {
		c.Locals("user_name", v)
	}
	return c.Next()
}

func openNewsTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	for _, ddl := range []string{
		`CREATE TABLE users (user_id TEXT PRIMARY KEY, user_name TEXT NOT NULL)`,
		`CREATE TABLE classes (class_id TEXT PRIMARY KEY, class_name TEXT NOT NULL)`,
		`CREATE TABLE modules (module_id TEXT PRIMARY KEY, module_title TEXT NOT NULL)`,
		`CREATE TABLE assignments (assignment_id TEXT PRIMARY KEY, assignment_title TEXT NOT NULL)`,
		`CREATE TABLE news (
			news_id TEXT PRIMARY KEY,
			news_title TEXT NOT NULL,
			news_content TEXT NOT NULL,
			news_image_url TEXT,
			news_created_by TEXT NOT NULL,
			news_created_at DATETIME NOT NULL,
			news_updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE news_links (
			news_link_news_id TEXT PRIMARY KEY,
			news_link_entity_kind TEXT NOT NULL,
			news_link_entity_id TEXT NOT NULL,
			news_link_created_at DATETIME NOT NULL
		)`,
	} {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func newNewsTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := openNewsTestDB(t)
	ctrl := NewNewsController(db)

	app := fiber.New()
	app.Use(testIdentityMiddleware)

	app.Get("/api/public/news", ctrl.List)
	app.Get("/api/public/news/by-entity/:kind/:entity_id", ctrl.ListByEntity)
	app.Get("/api/public/news/:id", ctrl.GetByID)

	app.Post("/api/a/news", ctrl.Create)
	app.Put("/api/a/news/:id", ctrl.Update)
	app.Delete("/api/a/news/:id", ctrl.Delete)
	app.Put("/api/a/news/:id/link", ctrl.Link)
	app.Delete("/api/a/news/:id/link", ctrl.Unlink)

	return app, db
}

type testUser struct {
	id   uuid.UUID
	role string
	name string
}

func seedUser(t *testing.T, db *gorm.DB, role, name string) testUser {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Exec(
		`INSERT INTO users (user_id, user_name) VALUES (?, ?)`, id, name,
	).Error)
	return testUser{id: id, role: role, name: name}
}

func seedClass(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Exec(
		`INSERT INTO classes (class_id, class_name) VALUES (?, ?)`, id, name,
	).Error)
	return id
}

func seedNews(t *testing.T, db *gorm.DB, createdBy uuid.UUID, title string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	now := time.Now()
	require.NoError(t, db.Exec(
		`INSERT INTO news (news_id, news_title, news_content, news_created_by, news_created_at, news_updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, title, "isi "+title, createdBy, now, now,
	).Error)
	return id
}

func seedNewsLink(t *testing.T, db *gorm.DB, newsID uuid.UUID, kind string, entityID uuid.UUID) {
	t.Helper()
	require.NoError(t, db.Exec(
		`INSERT INTO news_links (news_link_news_id, news_link_entity_kind, news_link_entity_id, news_link_created_at)
		 VALUES (?, ?, ?, ?)`,
		newsID, kind, entityID, time.Now(),
	).Error)
}

func doJSON(t *testing.T, app *fiber.App, u testUser, method, path string, body any) *http.Response {
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
	if u.id != uuid.Nil {
		req.Header.Set("X-Test-User", u.id.String())
		req.Header.Set("X-Test-Role", u.role)
		req.Header.Set("X-Test-Name", u.name)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func countRows(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()
	var cnt int64
	require.NoError(t, db.Table(table).Count(&cnt).Error)
	return cnt
}

func TestCreateNewsWithLink(t *testing.T) {
	app, db := newNewsTestApp(t)
	aslab := seedUser(t, db, constants.RoleAslab, "Bu Rina")
	classID := seedClass(t, db, "Jaringan Komputer")

	resp := doJSON(t, app, aslab, http.MethodPost, "/api/a/news", fiber.Map{
		"news_title":   "Praktikum minggu depan",
		"news_content": "Bawa laptop masing-masing.",
		"entity_type":  "class",
		"entity_id":    classID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	require.True(t, env.Success)

	var data struct {
		NewsID      uuid.UUID `json:"news_id"`
		LinkedType  *string   `json:"linked_type"`
		LinkedID    *string   `json:"linked_id"`
		LinkedTitle *string   `json:"linked_title"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotNil(t, data.LinkedType)
	require.Equal(t, "class", *data.LinkedType)
	require.NotNil(t, data.LinkedTitle)
	require.Equal(t, "Jaringan Komputer", *data.LinkedTitle)

	require.EqualValues(t, 1, countRows(t, db, "news"))
	require.EqualValues(t, 1, countRows(t, db, "news_links"))
}

func TestCreateNewsRequiresAslab(t *testing.T) {
	app, db := newNewsTestApp(t)
	praktikan := seedUser(t, db, constants.RolePraktikan, "Budi")

	resp := doJSON(t, app, praktikan, http.MethodPost, "/api/a/news", fiber.Map{
		"news_title":   "Coba-coba",
		"news_content": "Seharusnya ditolak.",
	})
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	require.EqualValues(t, 0, countRows(t, db, "news"))
}

func TestCreateNewsMissingTargetRollsBack(t *testing.T) {
	app, db := newNewsTestApp(t)
	aslab := seedUser(t, db, constants.RoleAslab, "Bu Rina")

	resp := doJSON(t, app, aslab, http.MethodPost, "/api/a/news", fiber.Map{
		"news_title":   "Tautan putus",
		"news_content": "Target tidak ada.",
		"entity_type":  "class",
		"entity_id":    uuid.New(),
	})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// Transaksi rollback: berita tidak boleh tersimpan yatim.
	require.EqualValues(t, 0, countRows(t, db, "news"))
	require.EqualValues(t, 0, countRows(t, db, "news_links"))
}

func TestCreateNewsInvalidKind(t *testing.T) {
	app, db := newNewsTestApp(t)
	aslab := seedUser(t, db, constants.RoleAslab, "Bu Rina")

	resp := doJSON(t, app, aslab, http.MethodPost, "/api/a/news", fiber.Map{
		"news_title":   "Kind salah",
		"news_content": "folder bukan kind tautan.",
		"entity_type":  "folder",
		"entity_id":    uuid.New(),
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.EqualValues(t, 0, countRows(t, db, "news"))
}

func TestUpdateNewsWithoutTargetClearsLink(t *testing.T) {
	app, db := newNewsTestApp(t)
	aslab := seedUser(t, db, constants.RoleAslab, "Bu Rina")
	classID := seedClass(t, db, "Basis Data")
	newsID := seedNews(t, db, aslab.id, "Pengumuman lama")
	seedNewsLink(t, db, newsID, "class", classID)

	resp := doJSON(t, app, aslab, http.MethodPut, "/api/a/news/"+newsID.String(), fiber.Map{
		"news_title": "Pengumuman baru",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// entity_type tidak dikirim = tautan dilepas.
	require.EqualValues(t, 0, countRows(t, db, "news_links"))

	var title string
	require.NoError(t, db.Table("news").
		Select("news_title").
		Where("news_id = ?", newsID).
		Take(&title).Error)
	require.Equal(t, "Pengumuman baru", title)
}

func TestUpdateNewsReplacesLink(t *testing.T) {
	app, db := newNewsTestApp(t)
	aslab := seedUser(t, db, constants.RoleAslab, "Bu Rina")
	oldClass := seedClass(t, db, "Kelas Lama")
	newClass := seedClass(t, db, "Kelas Baru")
	newsID := seedNews(t, db, aslab.id, "Pindah kelas")
	seedNewsLink(t, db, newsID, "class", oldClass)

	resp := doJSON(t, app, aslab, http.MethodPut, "/api/a/news/"+newsID.String(), fiber.Map{
		"entity_type": "class",
		"entity_id":   newClass,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.EqualValues(t, 1, countRows(t, db, "news_links"))

	var entityID string
	require.NoError(t, db.Table("news_links").
		Select("news_link_entity_id").
		Where("news_link_news_id = ?", newsID).
		Take(&entityID).Error)
	require.Equal(t, newClass.String(), entityID)
}

func TestUpdateNewsByOtherPraktikanForbidden(t *testing.T) {
	app, db := newNewsTestApp(t)
	aslab := seedUser(t, db, constants.RoleAslab, "Bu Rina")
	praktikan := seedUser(t, db, constants.RolePraktikan, "Budi")
	newsID := seedNews(t, db, aslab.id, "Milik aslab")

	resp := doJSON(t, app, praktikan, http.MethodPut, "/api/a/news/"+newsID.String(), fiber.Map{
		"news_title": "Diubah diam-diam",
	})
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestUpdateMissingNewsReturns404BeforeOwnershipCheck(t *testing.T) {
	app, db := newNewsTestApp(t)
	praktikan := seedUser(t, db, constants.RolePraktikan, "Budi")

	resp := doJSON(t, app, praktikan, http.MethodPut, "/api/a/news/"+uuid.NewString(), fiber.Map{
		"news_title": "Apa saja",
	})
	// Eksistensi dicek sebelum kepemilikan: yang tidak ada selalu 404.
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteNewsRemovesLinkRow(t *testing.T) {
	app, db := newNewsTestApp(t)
	aslab := seedUser(t, db, constants.RoleAslab, "Bu Rina")
	classID := seedClass(t, db, "Sistem Operasi")
	newsID := seedNews(t, db, aslab.id, "Akan dihapus")
	seedNewsLink(t, db, newsID, "class", classID)

	resp := doJSON(t, app, aslab, http.MethodDelete, "/api/a/news/"+newsID.String(), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.EqualValues(t, 0, countRows(t, db, "news"))
	require.EqualValues(t, 0, countRows(t, db, "news_links"))
	// Kelas target tidak ikut terhapus.
	require.EqualValues(t, 1, countRows(t, db, "classes"))
}

func TestLinkAndUnlinkEndpoints(t *testing.T) {
	app, db := newNewsTestApp(t)
	aslab := seedUser(t, db, constants.RoleAslab, "Bu Rina")
	classID := seedClass(t, db, "Struktur Data")
	newsID := seedNews(t, db, aslab.id, "Berdiri sendiri")

	resp := doJSON(t, app, aslab, http.MethodPut,
		fmt.Sprintf("/api/a/news/%s/link", newsID), fiber.Map{
			"entity_type": "class",
			"entity_id":   classID,
		})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.EqualValues(t, 1, countRows(t, db, "news_links"))

	resp = doJSON(t, app, aslab, http.MethodDelete,
		fmt.Sprintf("/api/a/news/%s/link", newsID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.EqualValues(t, 0, countRows(t, db, "news_links"))
}

func TestListByEntityReturnsOnlyLinkedNews(t *testing.T) {
	app, db := newNewsTestApp(t)
	aslab := seedUser(t, db, constants.RoleAslab, "Bu Rina")
	classID := seedClass(t, db, "Pemrograman Web")
	otherClass := seedClass(t, db, "Kimia Dasar")

	linked := seedNews(t, db, aslab.id, "Tentang kelas web")
	other := seedNews(t, db, aslab.id, "Tentang kelas kimia")
	seedNews(t, db, aslab.id, "Tanpa tautan")
	seedNewsLink(t, db, linked, "class", classID)
	seedNewsLink(t, db, other, "class", otherClass)

	resp := doJSON(t, app, testUser{}, http.MethodGet,
		fmt.Sprintf("/api/public/news/by-entity/class/%s", classID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	var items []struct {
		NewsID uuid.UUID `json:"news_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	require.Equal(t, linked, items[0].NewsID)
}

func TestGetNewsByIDIncludesCreatorName(t *testing.T) {
	app, db := newNewsTestApp(t)
	aslab := seedUser(t, db, constants.RoleAslab, "Bu Rina")
	newsID := seedNews(t, db, aslab.id, "Profil pembuat")

	resp := doJSON(t, app, testUser{}, http.MethodGet, "/api/public/news/"+newsID.String(), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	var data struct {
		NewsCreatedByName string `json:"news_created_by_name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Equal(t, "Bu Rina", data.NewsCreatedByName)
}
