package linking

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Link: isi satu baris tautan milik sebuah owner record.
type Link struct {
	Kind     EntityKind
	EntityID uuid.UUID
}

// StoreConfig memetakan LinkStore ke tabel samping milik satu jenis owner
// (news_links, post_links). Primary key tabel link = kolom owner id, sehingga
// "maksimal satu link per owner" dijamin struktural dan replace = upsert.
type StoreConfig struct {
	LinkTable      string
	OwnerIDColumn  string
	KindColumn     string
	EntityIDColumn string
	CreatedAtCol   string

	// Untuk ListOwnersLinkedTo (order by waktu dibuatnya owner record).
	OwnerTable           string
	OwnerIDRefColumn     string
	OwnerCreatedAtColumn string
}

type LinkStore struct {
	cfg StoreConfig
	reg *Registry
}

func NewLinkStore(cfg StoreConfig, reg *Registry) *LinkStore {
	return &LinkStore{cfg: cfg, reg: reg}
}

func (s *LinkStore) Registry() *Registry { return s.reg }

// SetLink memvalidasi kind + eksistensi target lalu meng-upsert baris link.
// Idempotent: dua kali dengan argumen sama tetap satu baris.
func (s *LinkStore) SetLink(db *gorm.DB, ownerID uuid.UUID, kind EntityKind, entityID uuid.UUID) error {
	if !s.reg.Valid(kind) {
		return ErrInvalidEntityKind
	}
	ok, err := s.reg.Exists(db, kind, entityID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrEntityNotFound
	}

	return db.Table(s.cfg.LinkTable).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: s.cfg.OwnerIDColumn}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				s.cfg.KindColumn:     string(kind),
				s.cfg.EntityIDColumn: entityID,
			}),
		}).
		Create(map[string]interface{}{
			s.cfg.OwnerIDColumn:  ownerID,
			s.cfg.KindColumn:     string(kind),
			s.cfg.EntityIDColumn: entityID,
			s.cfg.CreatedAtCol:   time.Now(),
		}).Error
}

// ClearLink menghapus baris link bila ada; no-op bila tidak ada.
func (s *LinkStore) ClearLink(db *gorm.DB, ownerID uuid.UUID) error {
	return db.Exec(
		fmt.Sprintf("DELETE FROM %s WHERE %s = ?", s.cfg.LinkTable, s.cfg.OwnerIDColumn),
		ownerID,
	).Error
}

// GetLink mengembalikan (link, nil) atau (nil, nil) bila owner tidak punya link.
func (s *LinkStore) GetLink(db *gorm.DB, ownerID uuid.UUID) (*Link, error) {
	var row struct {
		Kind     string
		EntityID uuid.UUID
	}
	err := db.Table(s.cfg.LinkTable).
		Select(s.cfg.KindColumn+" AS kind, "+s.cfg.EntityIDColumn+" AS entity_id").
		Where(s.cfg.OwnerIDColumn+" = ?", ownerID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &Link{Kind: EntityKind(row.Kind), EntityID: row.EntityID}, nil
}

// GetLinks: batch lookup untuk banyak owner sekaligus (dipakai list response).
func (s *LinkStore) GetLinks(db *gorm.DB, ownerIDs []uuid.UUID) (map[uuid.UUID]Link, error) {
	out := make(map[uuid.UUID]Link, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		OwnerID  uuid.UUID
		Kind     string
		EntityID uuid.UUID
	}
	if err := db.Table(s.cfg.LinkTable).
		Select(s.cfg.OwnerIDColumn+" AS owner_id, "+s.cfg.KindColumn+" AS kind, "+s.cfg.EntityIDColumn+" AS entity_id").
		Where(s.cfg.OwnerIDColumn+" IN ?", ownerIDs).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.OwnerID] = Link{Kind: EntityKind(row.Kind), EntityID: row.EntityID}
	}
	return out, nil
}

// ListOwnersLinkedTo: semua owner id yang menaut ke (kind, entityID),
// diurutkan dari owner record terbaru.
func (s *LinkStore) ListOwnersLinkedTo(db *gorm.DB, kind EntityKind, entityID uuid.UUID) ([]uuid.UUID, error) {
	if !s.reg.Valid(kind) {
		return nil, ErrInvalidEntityKind
	}
	var ids []uuid.UUID
	err := db.Table(s.cfg.LinkTable).
		Joins(fmt.Sprintf("JOIN %s ON %s.%s = %s.%s",
			s.cfg.OwnerTable,
			s.cfg.OwnerTable, s.cfg.OwnerIDRefColumn,
			s.cfg.LinkTable, s.cfg.OwnerIDColumn)).
		Where(s.cfg.LinkTable+"."+s.cfg.KindColumn+" = ? AND "+s.cfg.LinkTable+"."+s.cfg.EntityIDColumn+" = ?",
			string(kind), entityID).
		Order(s.cfg.OwnerTable + "." + s.cfg.OwnerCreatedAtColumn + " DESC").
		Pluck(s.cfg.LinkTable+"."+s.cfg.OwnerIDColumn, &ids).Error
	return ids, err
}
