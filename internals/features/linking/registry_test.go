package linking

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestParseNormalizesInput(t *testing.T) {
	reg := DefaultRegistry()

	for raw, want := range map[string]EntityKind{
		"class":        KindClass,
		"Class":        KindClass,
		"  MODULE  ":   KindModule,
		"assignment":   KindAssignment,
		"Assignment\n": KindAssignment,
	} {
		got, err := reg.Parse(raw)
		require.NoError(t, err, "raw=%q", raw)
		require.Equal(t, want, got, "raw=%q", raw)
	}
}

func TestParseRejectsUnknownKind(t *testing.T) {
	reg := DefaultRegistry()

	for _, raw := range []string{"", "folder", "submission", "klass"} {
		_, err := reg.Parse(raw)
		require.ErrorIs(t, err, ErrInvalidEntityKind, "raw=%q", raw)
	}
}

func TestRegistryExists(t *testing.T) {
	db := openLinkTestDB(t)
	reg := DefaultRegistry()

	classID := insertClass(t, db, "Algoritma")

	ok, err := reg.Exists(db, KindClass, classID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = reg.Exists(db, KindClass, uuid.New())
	require.NoError(t, err)
	require.False(t, ok)

	_, err = reg.Exists(db, EntityKind("news"), classID)
	require.ErrorIs(t, err, ErrInvalidEntityKind)
}

func TestRegistryTitleOf(t *testing.T) {
	db := openLinkTestDB(t)
	reg := DefaultRegistry()

	moduleID := insertModule(t, db, "Modul 3: Graf")

	title, ok, err := reg.TitleOf(db, KindModule, moduleID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Modul 3: Graf", title)

	_, ok, err = reg.TitleOf(db, KindModule, uuid.New())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRegistryTitlesOfBatch(t *testing.T) {
	db := openLinkTestDB(t)
	reg := DefaultRegistry()

	a := insertClass(t, db, "Kelas A")
	b := insertClass(t, db, "Kelas B")

	out, err := reg.TitlesOf(db, KindClass, []uuid.UUID{a, b, uuid.New()})
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "Kelas A", out[a])
	require.Equal(t, "Kelas B", out[b])

	empty, err := reg.TitlesOf(db, KindClass, nil)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestRegisterAddsNewKind(t *testing.T) {
	reg := DefaultRegistry()
	require.False(t, reg.Valid(EntityKind("folder")))

	reg.Register(EntityDescriptor{
		Kind:        EntityKind("folder"),
		Table:       "folders",
		IDColumn:    "folder_id",
		TitleColumn: "folder_name",
	})

	kind, err := reg.Parse("Folder")
	require.NoError(t, err)
	require.Equal(t, EntityKind("folder"), kind)
}
