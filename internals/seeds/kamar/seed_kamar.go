package kamar

import (
	"encoding/json"
	"log"
	"os"

	"gorm.io/gorm"

	"kostku_backend/internals/features/kost/kamar/model"
)

type KamarSeed struct {
	Nomor        string  `json:"nomor"`
	Nama         string  `json:"nama"`
	Deskripsi    *string `json:"deskripsi"`
	HargaBulanan int     `json:"harga_bulanan"`
}

func SeedKamarFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file kamar:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}

	var inputs []KamarSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	for _, data := range inputs {
		var existing model.KamarModel
		if err := db.Where("kamar_nomor = ?", data.Nomor).First(&existing).Error; err == nil {
			log.Printf("ℹ️ Kamar '%s' sudah ada, dilewati.", data.Nomor)
			continue
		}

		k := model.KamarModel{
			KamarNomor:        data.Nomor,
			KamarNama:         data.Nama,
			KamarDesc:         data.Deskripsi,
			KamarHargaBulanan: data.HargaBulanan,
			KamarStatus:       model.KamarStatusAvailable,
		}
		if err := db.Create(&k).Error; err != nil {
			log.Printf("❌ Gagal insert kamar '%s': %v", data.Nomor, err)
			continue
		}
		log.Printf("✅ Kamar '%s' berhasil di-seed.", data.Nomor)
	}
}
