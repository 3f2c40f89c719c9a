package linking

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Skema minimal untuk store: tabel target + owner (news) + tabel link.
// DDL eksplisit karena tag kolom postgres (uuid, timestamptz) tidak dimengerti
// sqlite lewat AutoMigrate.
func openLinkTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	for _, ddl := range []string{
		`CREATE TABLE classes (class_id TEXT PRIMARY KEY, class_name TEXT NOT NULL)`,
		`CREATE TABLE modules (module_id TEXT PRIMARY KEY, module_title TEXT NOT NULL)`,
		`CREATE TABLE assignments (assignment_id TEXT PRIMARY KEY, assignment_title TEXT NOT NULL)`,
		`CREATE TABLE news (news_id TEXT PRIMARY KEY, news_created_at DATETIME NOT NULL)`,
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

func newsLinkStore() *LinkStore {
	return NewLinkStore(StoreConfig{
		LinkTable:      "news_links",
		OwnerIDColumn:  "news_link_news_id",
		KindColumn:     "news_link_entity_kind",
		EntityIDColumn: "news_link_entity_id",
		CreatedAtCol:   "news_link_created_at",

		OwnerTable:           "news",
		OwnerIDRefColumn:     "news_id",
		OwnerCreatedAtColumn: "news_created_at",
	}, DefaultRegistry())
}

func insertClass(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Exec(
		`INSERT INTO classes (class_id, class_name) VALUES (?, ?)`, id, name,
	).Error)
	return id
}

func insertModule(t *testing.T, db *gorm.DB, title string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Exec(
		`INSERT INTO modules (module_id, module_title) VALUES (?, ?)`, id, title,
	).Error)
	return id
}

func insertNews(t *testing.T, db *gorm.DB, createdAt time.Time) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Exec(
		`INSERT INTO news (news_id, news_created_at) VALUES (?, ?)`, id, createdAt,
	).Error)
	return id
}

func linkRowCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var cnt int64
	require.NoError(t, db.Table("news_links").Count(&cnt).Error)
	return cnt
}

func TestSetLinkThenGetLink(t *testing.T) {
	db := openLinkTestDB(t)
	store := newsLinkStore()

	classID := insertClass(t, db, "Jaringan Komputer")
	newsID := insertNews(t, db, time.Now())

	require.NoError(t, store.SetLink(db, newsID, KindClass, classID))

	got, err := store.GetLink(db, newsID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, KindClass, got.Kind)
	require.Equal(t, classID, got.EntityID)
}

func TestSetLinkIsIdempotent(t *testing.T) {
	db := openLinkTestDB(t)
	store := newsLinkStore()

	classID := insertClass(t, db, "Basis Data")
	newsID := insertNews(t, db, time.Now())

	require.NoError(t, store.SetLink(db, newsID, KindClass, classID))
	require.NoError(t, store.SetLink(db, newsID, KindClass, classID))

	require.EqualValues(t, 1, linkRowCount(t, db))
}

func TestSetLinkReplacesExistingLink(t *testing.T) {
	db := openLinkTestDB(t)
	store := newsLinkStore()

	classID := insertClass(t, db, "Sistem Operasi")
	moduleID := insertModule(t, db, "Modul 1: Proses")
	newsID := insertNews(t, db, time.Now())

	require.NoError(t, store.SetLink(db, newsID, KindClass, classID))
	require.NoError(t, store.SetLink(db, newsID, KindModule, moduleID))

	// Tetap satu baris; isinya target terbaru.
	require.EqualValues(t, 1, linkRowCount(t, db))

	got, err := store.GetLink(db, newsID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, KindModule, got.Kind)
	require.Equal(t, moduleID, got.EntityID)
}

func TestSetLinkRejectsInvalidKind(t *testing.T) {
	db := openLinkTestDB(t)
	store := newsLinkStore()

	newsID := insertNews(t, db, time.Now())
	err := store.SetLink(db, newsID, EntityKind("folder"), uuid.New())
	require.ErrorIs(t, err, ErrInvalidEntityKind)
	require.EqualValues(t, 0, linkRowCount(t, db))
}

func TestSetLinkRejectsMissingTarget(t *testing.T) {
	db := openLinkTestDB(t)
	store := newsLinkStore()

	classID := insertClass(t, db, "Pemrograman Web")
	newsID := insertNews(t, db, time.Now())
	require.NoError(t, store.SetLink(db, newsID, KindClass, classID))

	// Target tidak ada → error, link lama tidak disentuh.
	err := store.SetLink(db, newsID, KindModule, uuid.New())
	require.ErrorIs(t, err, ErrEntityNotFound)

	got, err := store.GetLink(db, newsID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, KindClass, got.Kind)
	require.Equal(t, classID, got.EntityID)
}

func TestGetLinkReturnsNilWhenAbsent(t *testing.T) {
	db := openLinkTestDB(t)
	store := newsLinkStore()

	got, err := store.GetLink(db, uuid.New())
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestClearLinkIsNoopWhenAbsent(t *testing.T) {
	db := openLinkTestDB(t)
	store := newsLinkStore()

	require.NoError(t, store.ClearLink(db, uuid.New()))
}

func TestClearLinkRemovesRow(t *testing.T) {
	db := openLinkTestDB(t)
	store := newsLinkStore()

	classID := insertClass(t, db, "Struktur Data")
	newsID := insertNews(t, db, time.Now())
	require.NoError(t, store.SetLink(db, newsID, KindClass, classID))

	require.NoError(t, store.ClearLink(db, newsID))
	require.EqualValues(t, 0, linkRowCount(t, db))

	got, err := store.GetLink(db, newsID)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestGetLinksBatch(t *testing.T) {
	db := openLinkTestDB(t)
	store := newsLinkStore()

	classID := insertClass(t, db, "Kalkulus")
	moduleID := insertModule(t, db, "Modul 2: Integral")

	linked1 := insertNews(t, db, time.Now())
	linked2 := insertNews(t, db, time.Now())
	unlinked := insertNews(t, db, time.Now())

	require.NoError(t, store.SetLink(db, linked1, KindClass, classID))
	require.NoError(t, store.SetLink(db, linked2, KindModule, moduleID))

	out, err := store.GetLinks(db, []uuid.UUID{linked1, linked2, unlinked})
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, Link{Kind: KindClass, EntityID: classID}, out[linked1])
	require.Equal(t, Link{Kind: KindModule, EntityID: moduleID}, out[linked2])
	_, ok := out[unlinked]
	require.False(t, ok)
}

func TestListOwnersLinkedToOrdersNewestFirst(t *testing.T) {
	db := openLinkTestDB(t)
	store := newsLinkStore()

	classID := insertClass(t, db, "Fisika Dasar")
	otherClass := insertClass(t, db, "Kimia Dasar")

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	oldest := insertNews(t, db, base)
	middle := insertNews(t, db, base.Add(time.Hour))
	newest := insertNews(t, db, base.Add(2*time.Hour))
	other := insertNews(t, db, base.Add(3*time.Hour))

	require.NoError(t, store.SetLink(db, oldest, KindClass, classID))
	require.NoError(t, store.SetLink(db, middle, KindClass, classID))
	require.NoError(t, store.SetLink(db, newest, KindClass, classID))
	require.NoError(t, store.SetLink(db, other, KindClass, otherClass))

	ids, err := store.ListOwnersLinkedTo(db, KindClass, classID)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{newest, middle, oldest}, ids)
}

func TestListOwnersLinkedToInvalidKind(t *testing.T) {
	db := openLinkTestDB(t)
	store := newsLinkStore()

	_, err := store.ListOwnersLinkedTo(db, EntityKind("user"), uuid.New())
	require.ErrorIs(t, err, ErrInvalidEntityKind)
}
