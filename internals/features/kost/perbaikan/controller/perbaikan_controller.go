package controller

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	kamarModel "kostku_backend/internals/features/kost/kamar/model"
	dto "kostku_backend/internals/features/kost/perbaikan/dto"
	model "kostku_backend/internals/features/kost/perbaikan/model"
	helper "kostku_backend/internals/helpers"
)

type PerbaikanController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewPerbaikanController(db *gorm.DB) *PerbaikanController {
	return &PerbaikanController{DB: db, Validator: validator.New()}
}

/* =======================================================================
   Penyewa
======================================================================= */

// POST /api/u/perbaikan — lapor kerusakan kamar yang sedang disewa
func (h *PerbaikanController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreatePerbaikanRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validator.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var kamar kamarModel.KamarModel
	if err := h.DB.WithContext(c.Context()).First(&kamar, "kamar_id = ?", req.KamarID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kamar tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// Hanya penyewa aktif kamar tsb yang boleh lapor.
	renting, err := h.isActiveTenant(c.Context(), req.KamarID, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !renting {
		return helper.JsonError(c, fiber.StatusForbidden, "Anda tidak sedang menyewa kamar ini")
	}

	m := &model.PerbaikanModel{
		PerbaikanKamarID:    kamar.KamarID,
		PerbaikanPelaporID:  userID,
		PerbaikanJudul:      strings.TrimSpace(req.Judul),
		PerbaikanKeterangan: req.Keterangan,
		PerbaikanStatus:     model.PerbaikanStatusOpen,
	}
	if err := h.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan laporan")
	}
	return helper.JsonCreated(c, "Laporan perbaikan dibuat", dto.FromModel(m))
}

// GET /api/u/perbaikan — laporan milik sendiri
func (h *PerbaikanController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []model.PerbaikanModel
	if err := h.DB.WithContext(c.Context()).
		Where("perbaikan_pelapor_id = ?", userID).
		Order("perbaikan_created_at desc").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.FromModels(rows))
}

/* =======================================================================
   Owner
======================================================================= */

// GET /api/o/perbaikan?status=&kamar_id=
func (h *PerbaikanController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := h.DB.WithContext(c.Context()).Model(&model.PerbaikanModel{})
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("perbaikan_status = ?", strings.ToUpper(status))
	}
	if kamarID := strings.TrimSpace(c.Query("kamar_id")); kamarID != "" {
		id, err := uuid.Parse(kamarID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "kamar_id tidak valid")
		}
		q = q.Where("perbaikan_kamar_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.PerbaikanModel
	if err := q.Order("perbaikan_created_at desc").Offset(paging.Offset).Limit(paging.Limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// PATCH /api/o/perbaikan/:id/status
// IN_PROGRESS menandai kamar UNDER_REPAIR kalau kamar sedang kosong;
// DONE/REJECTED mengembalikan ke AVAILABLE (lagi-lagi hanya kalau kosong).
func (h *PerbaikanController) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID perbaikan tidak valid")
	}

	var req dto.UpdatePerbaikanStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validator.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var m model.PerbaikanModel
	if err := h.DB.WithContext(c.Context()).First(&m, "perbaikan_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Laporan tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if m.IsClosed() {
		return helper.JsonError(c, fiber.StatusBadRequest, "Laporan sudah ditutup")
	}

	now := time.Now()
	err = h.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		m.PerbaikanStatus = req.Status
		if req.CatatanOwner != nil {
			m.PerbaikanCatatanOwner = req.CatatanOwner
		}
		if m.IsClosed() {
			m.PerbaikanSelesaiAt = &now
		}
		if err := tx.Save(&m).Error; err != nil {
			return err
		}

		// Status kamar hanya ikut berubah saat tidak ada sewa aktif —
		// penyewa yang masih tinggal tetap OCCUPIED.
		occupied, err := h.hasActiveSewa(tx, m.PerbaikanKamarID)
		if err != nil {
			return err
		}
		if occupied {
			return nil
		}
		switch req.Status {
		case model.PerbaikanStatusInProgress:
			return tx.Model(&kamarModel.KamarModel{}).
				Where("kamar_id = ?", m.PerbaikanKamarID).
				Update("kamar_status", kamarModel.KamarStatusUnderRepair).Error
		case model.PerbaikanStatusDone, model.PerbaikanStatusRejected:
			return tx.Model(&kamarModel.KamarModel{}).
				Where("kamar_id = ? AND kamar_status = ?", m.PerbaikanKamarID, kamarModel.KamarStatusUnderRepair).
				Update("kamar_status", kamarModel.KamarStatusAvailable).Error
		}
		return nil
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonUpdated(c, "Status perbaikan diperbarui", dto.FromModel(&m))
}

/* =======================================================================
   Helpers
======================================================================= */

func (h *PerbaikanController) isActiveTenant(ctx context.Context, kamarID, userID uuid.UUID) (bool, error) {
	var n int64
	err := h.DB.WithContext(ctx).
		Table("riwayat_sewa").
		Where("riwayat_sewa_kamar_id = ? AND riwayat_sewa_user_id = ? AND riwayat_sewa_status = 'ACTIVE' AND riwayat_sewa_deleted_at IS NULL", kamarID, userID).
		Count(&n).Error
	return n > 0, err
}

func (h *PerbaikanController) hasActiveSewa(tx *gorm.DB, kamarID uuid.UUID) (bool, error) {
	var n int64
	err := tx.
		Table("riwayat_sewa").
		Where("riwayat_sewa_kamar_id = ? AND riwayat_sewa_status = 'ACTIVE' AND riwayat_sewa_deleted_at IS NULL", kamarID).
		Count(&n).Error
	return n > 0, err
}
