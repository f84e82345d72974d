package dto

import (
	"time"

	"github.com/google/uuid"

	"kostku_backend/internals/features/kost/kamar/model"
)

type CreateKamarRequest struct {
	KamarNomor        string  `json:"kamar_nomor" validate:"required,max=20"`
	KamarNama         string  `json:"kamar_nama" validate:"required,max=100"`
	KamarDesc         *string `json:"kamar_deskripsi,omitempty"`
	KamarHargaBulanan int     `json:"kamar_harga_bulanan" validate:"gte=0"`
}

func (r *CreateKamarRequest) ToModel() *model.KamarModel {
	return &model.KamarModel{
		KamarNomor:        r.KamarNomor,
		KamarNama:         r.KamarNama,
		KamarDesc:         r.KamarDesc,
		KamarHargaBulanan: r.KamarHargaBulanan,
		KamarStatus:       model.KamarStatusAvailable,
	}
}

type UpdateKamarRequest struct {
	KamarNama         *string `json:"kamar_nama,omitempty" validate:"omitempty,max=100"`
	KamarDesc         *string `json:"kamar_deskripsi,omitempty"`
	KamarHargaBulanan *int    `json:"kamar_harga_bulanan,omitempty" validate:"omitempty,gte=0"`
	KamarStatus       *string `json:"kamar_status,omitempty" validate:"omitempty,oneof=AVAILABLE OCCUPIED UNDER_REPAIR"`
}

func (r *UpdateKamarRequest) Apply(m *model.KamarModel) {
	if r.KamarNama != nil {
		m.KamarNama = *r.KamarNama
	}
	if r.KamarDesc != nil {
		m.KamarDesc = r.KamarDesc
	}
	if r.KamarHargaBulanan != nil {
		m.KamarHargaBulanan = *r.KamarHargaBulanan
	}
	if r.KamarStatus != nil {
		m.KamarStatus = *r.KamarStatus
	}
}

type KamarResponse struct {
	KamarID           uuid.UUID `json:"kamar_id"`
	KamarNomor        string    `json:"kamar_nomor"`
	KamarNama         string    `json:"kamar_nama"`
	KamarDesc         *string   `json:"kamar_deskripsi,omitempty"`
	KamarHargaBulanan int       `json:"kamar_harga_bulanan"`
	KamarStatus       string    `json:"kamar_status"`
	CreatedAt         time.Time `json:"kamar_created_at"`
}

func FromModel(m *model.KamarModel) KamarResponse {
	return KamarResponse{
		KamarID:           m.KamarID,
		KamarNomor:        m.KamarNomor,
		KamarNama:         m.KamarNama,
		KamarDesc:         m.KamarDesc,
		KamarHargaBulanan: m.KamarHargaBulanan,
		KamarStatus:       m.KamarStatus,
		CreatedAt:         m.CreatedAt,
	}
}

func FromModels(ms []model.KamarModel) []KamarResponse {
	out := make([]KamarResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
