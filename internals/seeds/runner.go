package seeds

import (
	"gorm.io/gorm"

	kamar "kostku_backend/internals/seeds/kamar"
	users "kostku_backend/internals/seeds/users"
)

// RunAllSeeds dijalankan manual lewat flag --seed (lihat main.go).
func RunAllSeeds(db *gorm.DB) {
	//* User (owner + penyewa contoh)
	users.SeedUsersFromJSON(db, "internals/seeds/users/data_users.json")

	//* Kamar
	kamar.SeedKamarFromJSON(db, "internals/seeds/kamar/data_kamar.json")
}
