package linking

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"kelasku_backend/internals/constants"
)

func TestCanMutate(t *testing.T) {
	creator := uuid.New()
	other := uuid.New()

	tests := []struct {
		name      string
		actorID   uuid.UUID
		actorRole string
		want      bool
	}{
		{"pembuat boleh", creator, constants.RolePraktikan, true},
		{"aslab selalu boleh", other, constants.RoleAslab, true},
		{"aslab yang juga pembuat", creator, constants.RoleAslab, true},
		{"praktikan lain tidak boleh", other, constants.RolePraktikan, false},
		{"role kosong tidak boleh", other, "", false},
		{"role tak dikenal tidak boleh", other, "admin", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CanMutate(tt.actorID, tt.actorRole, creator))
		})
	}
}
