package model

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */
/* Selaras dengan ENUM di PostgreSQL: tagihan_jenis, tagihan_status */

const (
	TagihanJenisSewa         = "sewa"         // tagihan awal booking
	TagihanJenisPerpanjangan = "perpanjangan" // perpanjangan sewa berjalan
	TagihanJenisBulanan      = "bulanan"      // sewa bulanan rutin
	TagihanJenisUtilitas     = "utilitas"     // listrik/air/dll
	TagihanJenisLainnya      = "lainnya"
)

const (
	TagihanStatusUnpaid  = "UNPAID"
	TagihanStatusPaid    = "PAID"
	TagihanStatusOverdue = "OVERDUE"
)

/* ===================== Model ===================== */

type TagihanModel struct {
	TagihanID uuid.UUID `gorm:"column:tagihan_id;type:uuid;primaryKey" json:"tagihan_id"`

	TagihanNomor  string     `gorm:"column:tagihan_nomor;size:40;unique;not null" json:"tagihan_nomor"`
	TagihanUserID uuid.UUID  `gorm:"column:tagihan_user_id;type:uuid;not null;index" json:"tagihan_user_id"`
	TagihanSewaID *uuid.UUID `gorm:"column:tagihan_sewa_id;type:uuid;index" json:"tagihan_sewa_id,omitempty"`

	TagihanJenis      string    `gorm:"column:tagihan_jenis;type:varchar(20);not null;default:'lainnya'" json:"tagihan_jenis"`
	TagihanNominal    int       `gorm:"column:tagihan_nominal;not null;check:tagihan_nominal >= 0" json:"tagihan_nominal"`
	TagihanJatuhTempo time.Time `gorm:"column:tagihan_jatuh_tempo;not null" json:"tagihan_jatuh_tempo"`
	TagihanKeterangan *string   `gorm:"column:tagihan_keterangan;type:text" json:"tagihan_keterangan,omitempty"`

	// Jumlah bulan perpanjangan untuk jenis=perpanjangan.
	// Kolom terstruktur menggantikan sniffing teks keterangan; baris lama
	// (kolom 0) masih bisa dibaca lewat fallback parser di bawah.
	TagihanPerpanjanganBulan int `gorm:"column:tagihan_perpanjangan_bulan;not null;default:0" json:"tagihan_perpanjangan_bulan"`

	TagihanStatus string `gorm:"column:tagihan_status;type:varchar(10);not null;default:'UNPAID'" json:"tagihan_status"`

	CreatedAt time.Time      `gorm:"column:tagihan_created_at;autoCreateTime" json:"tagihan_created_at"`
	UpdatedAt time.Time      `gorm:"column:tagihan_updated_at;autoUpdateTime" json:"tagihan_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:tagihan_deleted_at;index" json:"tagihan_deleted_at,omitempty"`
}

func (TagihanModel) TableName() string { return "tagihan" }

func (t *TagihanModel) BeforeCreate(tx *gorm.DB) error {
	if t.TagihanID == uuid.Nil {
		t.TagihanID = uuid.New()
	}
	return nil
}

/* ===================== Helpers ===================== */

var extensionMonthsRe = regexp.MustCompile(`(?i)untuk\s+(\d+)\s+bulan`)

// IsPerpanjangan: jenis terstruktur, atau fallback keterangan berisi
// "Perpanjangan" untuk baris yang dibuat sebelum kolom jenis ada.
func (t *TagihanModel) IsPerpanjangan() bool {
	if t.TagihanJenis == TagihanJenisPerpanjangan {
		return true
	}
	return t.TagihanKeterangan != nil &&
		strings.Contains(strings.ToLower(*t.TagihanKeterangan), "perpanjangan")
}

// PerpanjanganBulan mengembalikan jumlah bulan perpanjangan.
// Prioritas kolom terstruktur; fallback parse "untuk N bulan" dari keterangan.
// 0 = bukan perpanjangan / tidak bisa ditentukan.
func (t *TagihanModel) PerpanjanganBulan() int {
	if !t.IsPerpanjangan() {
		return 0
	}
	if t.TagihanPerpanjanganBulan > 0 {
		return t.TagihanPerpanjanganBulan
	}
	if t.TagihanKeterangan == nil {
		return 0
	}
	m := extensionMonthsRe.FindStringSubmatch(*t.TagihanKeterangan)
	if len(m) != 2 {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
