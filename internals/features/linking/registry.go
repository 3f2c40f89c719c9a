package linking

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EntityDescriptor mendeskripsikan satu kind: tabel pemiliknya dan kolom
// id/judul untuk cek eksistensi + denormalisasi judul di response.
// Menambah kind baru = satu Register() baru, tanpa menyentuh call site lain.
type EntityDescriptor struct {
	Kind        EntityKind
	Table       string
	IDColumn    string
	TitleColumn string
}

type Registry struct {
	kinds map[EntityKind]EntityDescriptor
}

func NewRegistry(descs ...EntityDescriptor) *Registry {
	r := &Registry{kinds: make(map[EntityKind]EntityDescriptor, len(descs))}
	for _, d := range descs {
		r.Register(d)
	}
	return r
}

// DefaultRegistry: tiga kind milik aplikasi ini.
func DefaultRegistry() *Registry {
	return NewRegistry(
		EntityDescriptor{Kind: KindClass, Table: "classes", IDColumn: "class_id", TitleColumn: "class_name"},
		EntityDescriptor{Kind: KindModule, Table: "modules", IDColumn: "module_id", TitleColumn: "module_title"},
		EntityDescriptor{Kind: KindAssignment, Table: "assignments", IDColumn: "assignment_id", TitleColumn: "assignment_title"},
	)
}

func (r *Registry) Register(d EntityDescriptor) {
	r.kinds[d.Kind] = d
}

func (r *Registry) Valid(kind EntityKind) bool {
	_, ok := r.kinds[kind]
	return ok
}

// Parse menormalkan string dari request menjadi EntityKind terdaftar.
func (r *Registry) Parse(raw string) (EntityKind, error) {
	kind := EntityKind(strings.ToLower(strings.TrimSpace(raw)))
	if !r.Valid(kind) {
		return "", ErrInvalidEntityKind
	}
	return kind, nil
}

// Exists: probe count ke tabel pemilik kind tersebut.
func (r *Registry) Exists(db *gorm.DB, kind EntityKind, id uuid.UUID) (bool, error) {
	d, ok := r.kinds[kind]
	if !ok {
		return false, ErrInvalidEntityKind
	}
	var cnt int64
	if err := db.Table(d.Table).
		Where(d.IDColumn+" = ?", id).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// TitleOf mengambil judul display untuk satu target.
func (r *Registry) TitleOf(db *gorm.DB, kind EntityKind, id uuid.UUID) (string, bool, error) {
	d, ok := r.kinds[kind]
	if !ok {
		return "", false, ErrInvalidEntityKind
	}
	var title string
	err := db.Table(d.Table).
		Select(d.TitleColumn).
		Where(d.IDColumn+" = ?", id).
		Take(&title).Error
	if err == gorm.ErrRecordNotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return title, true, nil
}

// TitlesOf: batch judul untuk banyak id sekaligus (dipakai list response).
func (r *Registry) TitlesOf(db *gorm.DB, kind EntityKind, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	d, ok := r.kinds[kind]
	if !ok {
		return nil, ErrInvalidEntityKind
	}
	var rows []struct {
		ID    uuid.UUID
		Title string
	}
	if err := db.Table(d.Table).
		Select(d.IDColumn+" AS id, "+d.TitleColumn+" AS title").
		Where(d.IDColumn+" IN ?", ids).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row.Title
	}
	return out, nil
}
