package linking

import (
	"github.com/google/uuid"

	"kelasku_backend/internals/constants"
)

// CanMutate: pembuat record atau aslab boleh mengubah/menghapus.
// Dipakai seragam untuk update/delete/link/unlink di news dan posts.
func CanMutate(actorID uuid.UUID, actorRole string, createdBy uuid.UUID) bool {
	return actorID == createdBy || actorRole == constants.RoleAslab
}
