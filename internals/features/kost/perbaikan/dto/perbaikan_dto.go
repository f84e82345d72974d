package dto

import (
	"time"

	"github.com/google/uuid"

	model "kostku_backend/internals/features/kost/perbaikan/model"
)

type CreatePerbaikanRequest struct {
	KamarID    uuid.UUID `json:"kamar_id" validate:"required"`
	Judul      string    `json:"judul" validate:"required,min=3,max=120"`
	Keterangan *string   `json:"keterangan" validate:"omitempty,max=2000"`
}

type UpdatePerbaikanStatusRequest struct {
	Status       string  `json:"status" validate:"required,oneof=OPEN IN_PROGRESS DONE REJECTED"`
	CatatanOwner *string `json:"catatan_owner" validate:"omitempty,max=2000"`
}

type PerbaikanResponse struct {
	PerbaikanID  uuid.UUID  `json:"perbaikan_id"`
	KamarID      uuid.UUID  `json:"kamar_id"`
	PelaporID    uuid.UUID  `json:"pelapor_id"`
	Judul        string     `json:"judul"`
	Keterangan   *string    `json:"keterangan,omitempty"`
	Status       string     `json:"status"`
	CatatanOwner *string    `json:"catatan_owner,omitempty"`
	SelesaiAt    *time.Time `json:"selesai_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func FromModel(m *model.PerbaikanModel) PerbaikanResponse {
	return PerbaikanResponse{
		PerbaikanID:  m.PerbaikanID,
		KamarID:      m.PerbaikanKamarID,
		PelaporID:    m.PerbaikanPelaporID,
		Judul:        m.PerbaikanJudul,
		Keterangan:   m.PerbaikanKeterangan,
		Status:       m.PerbaikanStatus,
		CatatanOwner: m.PerbaikanCatatanOwner,
		SelesaiAt:    m.PerbaikanSelesaiAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func FromModels(rows []model.PerbaikanModel) []PerbaikanResponse {
	out := make([]PerbaikanResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}
