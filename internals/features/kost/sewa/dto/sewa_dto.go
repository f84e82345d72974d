package dto

import (
	"time"

	"github.com/google/uuid"

	"kostku_backend/internals/features/kost/sewa/model"
)

type CreateBookingRequest struct {
	KamarID     uuid.UUID `json:"kamar_id" validate:"required"`
	DurasiBulan int       `json:"durasi_bulan" validate:"required,gte=1,lte=24"`
}

type CreatePerpanjanganRequest struct {
	Bulan int `json:"bulan" validate:"required,gte=1,lte=24"`
}

type SewaResponse struct {
	SewaID           uuid.UUID `json:"riwayat_sewa_id"`
	SewaNomor        string    `json:"riwayat_sewa_nomor"`
	SewaUserID       uuid.UUID `json:"riwayat_sewa_user_id"`
	SewaKamarID      uuid.UUID `json:"riwayat_sewa_kamar_id"`
	SewaMulai        time.Time `json:"riwayat_sewa_mulai"`
	SewaSelesai      time.Time `json:"riwayat_sewa_selesai"`
	SewaHargaBulanan int       `json:"riwayat_sewa_harga_bulanan"`
	SewaDurasiBulan  int       `json:"riwayat_sewa_durasi_bulan"`
	SewaStatus       string    `json:"riwayat_sewa_status"`
	CreatedAt        time.Time `json:"riwayat_sewa_created_at"`
}

func FromModel(m *model.RiwayatSewaModel) SewaResponse {
	return SewaResponse{
		SewaID:           m.SewaID,
		SewaNomor:        m.SewaNomor,
		SewaUserID:       m.SewaUserID,
		SewaKamarID:      m.SewaKamarID,
		SewaMulai:        m.SewaMulai,
		SewaSelesai:      m.SewaSelesai,
		SewaHargaBulanan: m.SewaHargaBulanan,
		SewaDurasiBulan:  m.SewaDurasiBulan,
		SewaStatus:       m.SewaStatus,
		CreatedAt:        m.CreatedAt,
	}
}

func FromModels(ms []model.RiwayatSewaModel) []SewaResponse {
	out := make([]SewaResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
