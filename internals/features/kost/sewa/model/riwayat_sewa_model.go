package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */

const (
	SewaStatusActive    = "ACTIVE"
	SewaStatusCompleted = "COMPLETED"
	SewaStatusCancelled = "CANCELLED"
)

/* ===================== Model ===================== */

type RiwayatSewaModel struct {
	SewaID uuid.UUID `gorm:"column:riwayat_sewa_id;type:uuid;primaryKey" json:"riwayat_sewa_id"`

	SewaNomor   string    `gorm:"column:riwayat_sewa_nomor;size:40;unique;not null" json:"riwayat_sewa_nomor"`
	SewaUserID  uuid.UUID `gorm:"column:riwayat_sewa_user_id;type:uuid;not null;index" json:"riwayat_sewa_user_id"`
	SewaKamarID uuid.UUID `gorm:"column:riwayat_sewa_kamar_id;type:uuid;not null;index" json:"riwayat_sewa_kamar_id"`

	SewaMulai   time.Time `gorm:"column:riwayat_sewa_mulai;not null" json:"riwayat_sewa_mulai"`
	SewaSelesai time.Time `gorm:"column:riwayat_sewa_selesai;not null" json:"riwayat_sewa_selesai"`

	// Snapshot harga saat booking, supaya perubahan harga kamar tidak
	// mengubah tagihan sewa yang sudah berjalan.
	SewaHargaBulanan int `gorm:"column:riwayat_sewa_harga_bulanan;not null;default:0" json:"riwayat_sewa_harga_bulanan"`
	SewaDurasiBulan  int `gorm:"column:riwayat_sewa_durasi_bulan;not null;default:0" json:"riwayat_sewa_durasi_bulan"`

	SewaStatus string `gorm:"column:riwayat_sewa_status;type:varchar(10);not null;default:'ACTIVE'" json:"riwayat_sewa_status"`

	CreatedAt time.Time      `gorm:"column:riwayat_sewa_created_at;autoCreateTime" json:"riwayat_sewa_created_at"`
	UpdatedAt time.Time      `gorm:"column:riwayat_sewa_updated_at;autoUpdateTime" json:"riwayat_sewa_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:riwayat_sewa_deleted_at;index" json:"riwayat_sewa_deleted_at,omitempty"`
}

func (RiwayatSewaModel) TableName() string { return "riwayat_sewa" }

func (s *RiwayatSewaModel) BeforeCreate(tx *gorm.DB) error {
	if s.SewaID == uuid.Nil {
		s.SewaID = uuid.New()
	}
	return nil
}

func (s *RiwayatSewaModel) IsActive() bool {
	return s.SewaStatus == SewaStatusActive
}
