package constants

import "fmt"

// Role user di aplikasi kost.
const (
	RolePenyewa = "penyewa"
	RoleOwner   = "owner"
)

// Template pesan error role
const (
	ErrOnlyOwnersCanAccess = "❌ Hanya owner yang boleh mengakses fitur %s."
)

func RoleErrorOwner(feature string) string {
	return fmt.Sprintf(ErrOnlyOwnersCanAccess, feature)
}
