package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */
/* Selaras dengan ENUM di PostgreSQL: payment_status, payment_gateway */

const (
	PaymentStatusPending = "PENDING"
	PaymentStatusSuccess = "SUCCESS"
	PaymentStatusFailed  = "FAILED"
	PaymentStatusExpired = "EXPIRED"
	PaymentStatusCancel  = "CANCEL"
)

const (
	PaymentGatewayMidtrans = "midtrans"
	PaymentGatewayManual   = "manual"
)

/* ===================== Model ===================== */

type PaymentModel struct {
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;primaryKey" json:"payment_id"`

	// Order ID yang dikirim ke Midtrans; kunci lookup webhook & sync.
	PaymentOrderCode string `gorm:"column:payment_order_code;size:40;unique;not null" json:"payment_order_code"`

	PaymentUserID    uuid.UUID  `gorm:"column:payment_user_id;type:uuid;not null;index" json:"payment_user_id"`
	PaymentTagihanID uuid.UUID  `gorm:"column:payment_tagihan_id;type:uuid;not null;index" json:"payment_tagihan_id"`
	PaymentSewaID    *uuid.UUID `gorm:"column:payment_sewa_id;type:uuid;index" json:"payment_sewa_id,omitempty"` // denormalisasi dari tagihan

	PaymentNominal int    `gorm:"column:payment_nominal;not null;check:payment_nominal >= 0" json:"payment_nominal"`
	PaymentStatus  string `gorm:"column:payment_status;type:varchar(10);not null;default:'PENDING'" json:"payment_status"`
	PaymentGateway string `gorm:"column:payment_gateway;type:varchar(10);not null;default:'midtrans'" json:"payment_gateway"`

	// Info dari gateway
	PaymentTransactionID *string           `gorm:"column:payment_transaction_id" json:"payment_transaction_id,omitempty"`
	PaymentMethod        *string           `gorm:"column:payment_method" json:"payment_method,omitempty"` // payment_type midtrans
	PaymentMeta          datatypes.JSONMap `gorm:"column:payment_meta;type:jsonb" json:"payment_meta,omitempty"`
	PaymentSnapToken     *string           `gorm:"column:payment_snap_token" json:"payment_snap_token,omitempty"`
	PaymentRedirectURL   *string           `gorm:"column:payment_redirect_url" json:"payment_redirect_url,omitempty"`

	PaymentPaidAt *time.Time `gorm:"column:payment_paid_at" json:"payment_paid_at,omitempty"`

	// Verifikasi manual oleh owner
	PaymentVerifiedBy *uuid.UUID `gorm:"column:payment_verified_by;type:uuid" json:"payment_verified_by,omitempty"`
	PaymentVerifiedAt *time.Time `gorm:"column:payment_verified_at" json:"payment_verified_at,omitempty"`

	CreatedAt time.Time      `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	UpdatedAt time.Time      `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:payment_deleted_at;index" json:"payment_deleted_at,omitempty"`
}

func (PaymentModel) TableName() string { return "payments" }

func (p *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if p.PaymentID == uuid.Nil {
		p.PaymentID = uuid.New()
	}
	return nil
}

/* ===================== Helpers ===================== */

// IsTerminal: status final yang tidak boleh dimutasi ulang oleh rekonsiliasi.
func (p *PaymentModel) IsTerminal() bool {
	switch p.PaymentStatus {
	case PaymentStatusSuccess, PaymentStatusFailed, PaymentStatusExpired, PaymentStatusCancel:
		return true
	default:
		return false
	}
}

func (p *PaymentModel) IsPending() bool {
	return p.PaymentStatus == PaymentStatusPending
}
