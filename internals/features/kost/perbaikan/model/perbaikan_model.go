package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PerbaikanStatusOpen       = "OPEN"
	PerbaikanStatusInProgress = "IN_PROGRESS"
	PerbaikanStatusDone       = "DONE"
	PerbaikanStatusRejected   = "REJECTED"
)

// PerbaikanModel = laporan kerusakan kamar dari penyewa.
type PerbaikanModel struct {
	PerbaikanID uuid.UUID `gorm:"column:perbaikan_id;type:uuid;primaryKey" json:"perbaikan_id"`

	PerbaikanKamarID    uuid.UUID `gorm:"column:perbaikan_kamar_id;type:uuid;not null;index" json:"perbaikan_kamar_id"`
	PerbaikanPelaporID  uuid.UUID `gorm:"column:perbaikan_pelapor_id;type:uuid;not null;index" json:"perbaikan_pelapor_id"`
	PerbaikanJudul      string    `gorm:"column:perbaikan_judul;size:120;not null" json:"perbaikan_judul"`
	PerbaikanKeterangan *string   `gorm:"column:perbaikan_keterangan;type:text" json:"perbaikan_keterangan,omitempty"`

	// OPEN | IN_PROGRESS | DONE | REJECTED
	PerbaikanStatus string `gorm:"column:perbaikan_status;type:varchar(15);not null;default:'OPEN'" json:"perbaikan_status"`

	PerbaikanCatatanOwner *string    `gorm:"column:perbaikan_catatan_owner;type:text" json:"perbaikan_catatan_owner,omitempty"`
	PerbaikanSelesaiAt    *time.Time `gorm:"column:perbaikan_selesai_at" json:"perbaikan_selesai_at,omitempty"`

	CreatedAt time.Time      `gorm:"column:perbaikan_created_at;autoCreateTime" json:"perbaikan_created_at"`
	UpdatedAt time.Time      `gorm:"column:perbaikan_updated_at;autoUpdateTime" json:"perbaikan_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:perbaikan_deleted_at;index" json:"perbaikan_deleted_at,omitempty"`
}

func (PerbaikanModel) TableName() string { return "perbaikan" }

func (m *PerbaikanModel) BeforeCreate(tx *gorm.DB) error {
	if m.PerbaikanID == uuid.Nil {
		m.PerbaikanID = uuid.New()
	}
	return nil
}

func (m *PerbaikanModel) IsClosed() bool {
	return m.PerbaikanStatus == PerbaikanStatusDone || m.PerbaikanStatus == PerbaikanStatusRejected
}
