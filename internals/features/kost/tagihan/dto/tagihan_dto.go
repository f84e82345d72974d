package dto

import (
	"time"

	"github.com/google/uuid"

	"kostku_backend/internals/features/kost/tagihan/model"
)

type CreateTagihanRequest struct {
	TagihanUserID            uuid.UUID  `json:"tagihan_user_id" validate:"required"`
	TagihanSewaID            *uuid.UUID `json:"tagihan_sewa_id,omitempty"`
	TagihanJenis             string     `json:"tagihan_jenis" validate:"required,oneof=sewa perpanjangan bulanan utilitas lainnya"`
	TagihanNominal           int        `json:"tagihan_nominal" validate:"required,gt=0"`
	TagihanJatuhTempo        time.Time  `json:"tagihan_jatuh_tempo" validate:"required"`
	TagihanKeterangan        *string    `json:"tagihan_keterangan,omitempty"`
	TagihanPerpanjanganBulan int        `json:"tagihan_perpanjangan_bulan,omitempty" validate:"gte=0,lte=24"`
}

func (r *CreateTagihanRequest) ToModel(nomor string) *model.TagihanModel {
	return &model.TagihanModel{
		TagihanNomor:             nomor,
		TagihanUserID:            r.TagihanUserID,
		TagihanSewaID:            r.TagihanSewaID,
		TagihanJenis:             r.TagihanJenis,
		TagihanNominal:           r.TagihanNominal,
		TagihanJatuhTempo:        r.TagihanJatuhTempo,
		TagihanKeterangan:        r.TagihanKeterangan,
		TagihanPerpanjanganBulan: r.TagihanPerpanjanganBulan,
		TagihanStatus:            model.TagihanStatusUnpaid,
	}
}

type UpdateTagihanRequest struct {
	TagihanNominal    *int       `json:"tagihan_nominal,omitempty" validate:"omitempty,gt=0"`
	TagihanJatuhTempo *time.Time `json:"tagihan_jatuh_tempo,omitempty"`
	TagihanKeterangan *string    `json:"tagihan_keterangan,omitempty"`
	TagihanStatus     *string    `json:"tagihan_status,omitempty" validate:"omitempty,oneof=UNPAID PAID OVERDUE"`
}

func (r *UpdateTagihanRequest) Apply(m *model.TagihanModel) {
	if r.TagihanNominal != nil {
		m.TagihanNominal = *r.TagihanNominal
	}
	if r.TagihanJatuhTempo != nil {
		m.TagihanJatuhTempo = *r.TagihanJatuhTempo
	}
	if r.TagihanKeterangan != nil {
		m.TagihanKeterangan = r.TagihanKeterangan
	}
	if r.TagihanStatus != nil {
		m.TagihanStatus = *r.TagihanStatus
	}
}

type TagihanResponse struct {
	TagihanID                uuid.UUID  `json:"tagihan_id"`
	TagihanNomor             string     `json:"tagihan_nomor"`
	TagihanUserID            uuid.UUID  `json:"tagihan_user_id"`
	TagihanSewaID            *uuid.UUID `json:"tagihan_sewa_id,omitempty"`
	TagihanJenis             string     `json:"tagihan_jenis"`
	TagihanNominal           int        `json:"tagihan_nominal"`
	TagihanJatuhTempo        time.Time  `json:"tagihan_jatuh_tempo"`
	TagihanKeterangan        *string    `json:"tagihan_keterangan,omitempty"`
	TagihanPerpanjanganBulan int        `json:"tagihan_perpanjangan_bulan,omitempty"`
	TagihanStatus            string     `json:"tagihan_status"`
	CreatedAt                time.Time  `json:"tagihan_created_at"`
}

func FromModel(m *model.TagihanModel) TagihanResponse {
	return TagihanResponse{
		TagihanID:                m.TagihanID,
		TagihanNomor:             m.TagihanNomor,
		TagihanUserID:            m.TagihanUserID,
		TagihanSewaID:            m.TagihanSewaID,
		TagihanJenis:             m.TagihanJenis,
		TagihanNominal:           m.TagihanNominal,
		TagihanJatuhTempo:        m.TagihanJatuhTempo,
		TagihanKeterangan:        m.TagihanKeterangan,
		TagihanPerpanjanganBulan: m.TagihanPerpanjanganBulan,
		TagihanStatus:            m.TagihanStatus,
		CreatedAt:                m.CreatedAt,
	}
}

func FromModels(ms []model.TagihanModel) []TagihanResponse {
	out := make([]TagihanResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
