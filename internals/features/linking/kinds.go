// Package linking menangani relasi polimorfik "satu record → satu entity"
// yang dipakai fitur news dan posts: sebuah record boleh menunjuk tepat satu
// class, module, atau assignment lewat tabel samping ber-primary-key owner id.
package linking

import "errors"

// EntityKind adalah himpunan tertutup jenis entity yang bisa ditautkan.
type EntityKind string

const (
	KindClass      EntityKind = "class"
	KindModule     EntityKind = "module"
	KindAssignment EntityKind = "assignment"
)

var (
	// ErrInvalidEntityKind: kind di luar himpunan tertutup.
	ErrInvalidEntityKind = errors.New("entity kind tidak dikenal")
	// ErrEntityNotFound: target link tidak ada di tabel pemiliknya.
	ErrEntityNotFound = errors.New("entity target tidak ditemukan")
)
