package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */

const (
	KamarStatusAvailable   = "AVAILABLE"
	KamarStatusOccupied    = "OCCUPIED"
	KamarStatusUnderRepair = "UNDER_REPAIR"
)

/* ===================== Model ===================== */

type KamarModel struct {
	KamarID uuid.UUID `gorm:"column:kamar_id;type:uuid;primaryKey" json:"kamar_id"`

	KamarNomor string  `gorm:"column:kamar_nomor;size:20;unique;not null" json:"kamar_nomor"`
	KamarNama  string  `gorm:"column:kamar_nama;size:100;not null" json:"kamar_nama"`
	KamarDesc  *string `gorm:"column:kamar_deskripsi;type:text" json:"kamar_deskripsi,omitempty"`

	// Harga sewa per bulan dalam rupiah. 0 = belum dikonfigurasi, tidak bisa dibooking.
	KamarHargaBulanan int `gorm:"column:kamar_harga_bulanan;not null;default:0;check:kamar_harga_bulanan >= 0" json:"kamar_harga_bulanan"`

	KamarStatus string `gorm:"column:kamar_status;type:varchar(20);not null;default:'AVAILABLE'" json:"kamar_status"`

	CreatedAt time.Time      `gorm:"column:kamar_created_at;autoCreateTime" json:"kamar_created_at"`
	UpdatedAt time.Time      `gorm:"column:kamar_updated_at;autoUpdateTime" json:"kamar_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:kamar_deleted_at;index" json:"kamar_deleted_at,omitempty"`
}

func (KamarModel) TableName() string { return "kamar" }

func (k *KamarModel) BeforeCreate(tx *gorm.DB) error {
	if k.KamarID == uuid.Nil {
		k.KamarID = uuid.New()
	}
	return nil
}

func (k *KamarModel) IsAvailable() bool {
	return k.KamarStatus == KamarStatusAvailable
}
