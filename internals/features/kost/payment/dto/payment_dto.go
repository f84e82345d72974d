package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"kostku_backend/internals/features/kost/payment/model"
)

type CreatePaymentRequest struct {
	TagihanID uuid.UUID `json:"tagihan_id" validate:"required"`
}

// MidtransNotification: payload webhook dari Midtrans.
type MidtransNotification struct {
	TransactionTime   string           `json:"transaction_time"`
	TransactionStatus string           `json:"transaction_status"` // capture, settlement, pending, deny, cancel, expire, ...
	StatusCode        string           `json:"status_code"`
	SignatureKey      string           `json:"signature_key"`
	OrderID           string           `json:"order_id"`
	GrossAmount       string           `json:"gross_amount"`
	PaymentType       string           `json:"payment_type"`
	FraudStatus       string           `json:"fraud_status"` // accept / challenge / deny
	TransactionID     string           `json:"transaction_id"`
	SettlementTime    string           `json:"settlement_time"`
	VANumbers         []map[string]any `json:"va_numbers,omitempty"`
}

type PaymentResponse struct {
	PaymentID            uuid.UUID         `json:"payment_id"`
	PaymentOrderCode     string            `json:"payment_order_code"`
	PaymentUserID        uuid.UUID         `json:"payment_user_id"`
	PaymentTagihanID     uuid.UUID         `json:"payment_tagihan_id"`
	PaymentSewaID        *uuid.UUID        `json:"payment_sewa_id,omitempty"`
	PaymentNominal       int               `json:"payment_nominal"`
	PaymentStatus        string            `json:"payment_status"`
	PaymentGateway       string            `json:"payment_gateway"`
	PaymentTransactionID *string           `json:"payment_transaction_id,omitempty"`
	PaymentMethod        *string           `json:"payment_method,omitempty"`
	PaymentMeta          datatypes.JSONMap `json:"payment_meta,omitempty"`
	PaymentSnapToken     *string           `json:"payment_snap_token,omitempty"`
	PaymentRedirectURL   *string           `json:"payment_redirect_url,omitempty"`
	PaymentPaidAt        *time.Time        `json:"payment_paid_at,omitempty"`
	PaymentVerifiedBy    *uuid.UUID        `json:"payment_verified_by,omitempty"`
	PaymentVerifiedAt    *time.Time        `json:"payment_verified_at,omitempty"`
	CreatedAt            time.Time         `json:"payment_created_at"`
}

func FromModel(m *model.PaymentModel) PaymentResponse {
	return PaymentResponse{
		PaymentID:            m.PaymentID,
		PaymentOrderCode:     m.PaymentOrderCode,
		PaymentUserID:        m.PaymentUserID,
		PaymentTagihanID:     m.PaymentTagihanID,
		PaymentSewaID:        m.PaymentSewaID,
		PaymentNominal:       m.PaymentNominal,
		PaymentStatus:        m.PaymentStatus,
		PaymentGateway:       m.PaymentGateway,
		PaymentTransactionID: m.PaymentTransactionID,
		PaymentMethod:        m.PaymentMethod,
		PaymentMeta:          m.PaymentMeta,
		PaymentSnapToken:     m.PaymentSnapToken,
		PaymentRedirectURL:   m.PaymentRedirectURL,
		PaymentPaidAt:        m.PaymentPaidAt,
		PaymentVerifiedBy:    m.PaymentVerifiedBy,
		PaymentVerifiedAt:    m.PaymentVerifiedAt,
		CreatedAt:            m.CreatedAt,
	}
}

func FromModels(ms []model.PaymentModel) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
