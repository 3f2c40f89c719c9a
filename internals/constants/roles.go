package constants

import "fmt"

const (
	RoleAslab     = "aslab"     // asisten laboratorium (privileged)
	RolePraktikan = "praktikan" // mahasiswa peserta praktikum
)

// Template pesan error role
const (
	ErrOnlyAslabCanAccess = "❌ Hanya aslab yang boleh mengakses fitur %s."
)

func RoleErrorAslab(feature string) string {
	return fmt.Sprintf(ErrOnlyAslabCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAslab,
		RolePraktikan,
	}

	AslabOnly = []string{
		RoleAslab,
	}
)
