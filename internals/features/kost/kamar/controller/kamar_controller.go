package controller

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	dto "kostku_backend/internals/features/kost/kamar/dto"
	model "kostku_backend/internals/features/kost/kamar/model"
	helper "kostku_backend/internals/helpers"
)

type KamarController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Cache     *redis.Client // boleh nil → cache nonaktif
}

func NewKamarController(db *gorm.DB, cache *redis.Client) *KamarController {
	return &KamarController{
		DB:        db,
		Validator: validator.New(),
		Cache:     cache,
	}
}

const availableCacheKey = "kamar:available"

/* ======================= OWNER CRUD ======================= */

// POST /api/o/kamar
func (h *KamarController) Create(c *fiber.Ctx) error {
	var req dto.CreateKamarRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validator.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	m := req.ToModel()
	if err := h.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "Nomor kamar sudah dipakai")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat kamar")
	}

	h.invalidateCache(c.Context())
	return helper.JsonCreated(c, "Kamar berhasil dibuat", dto.FromModel(m))
}

// GET /api/o/kamar
func (h *KamarController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := h.DB.WithContext(c.Context()).Model(&model.KamarModel{})
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("kamar_status = ?", strings.ToUpper(status))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.KamarModel
	if err := q.Order("kamar_nomor asc").Offset(paging.Offset).Limit(paging.Limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", dto.FromModels(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /api/o/kamar/:id
func (h *KamarController) GetByID(c *fiber.Ctx) error {
	m, err := h.findByID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

// PATCH /api/o/kamar/:id
func (h *KamarController) Update(c *fiber.Ctx) error {
	m, err := h.findByID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateKamarRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validator.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	// Kamar dengan sewa ACTIVE tidak boleh dipindah status manual:
	// status dimiliki booking/rekonsiliasi selama sewa berjalan.
	if req.KamarStatus != nil && *req.KamarStatus != m.KamarStatus {
		active, err := h.hasActiveSewa(c.Context(), m.KamarID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		if active {
			return helper.JsonError(c, fiber.StatusConflict, "Kamar masih punya sewa aktif, status tidak bisa diubah manual")
		}
	}

	req.Apply(m)
	if err := h.DB.WithContext(c.Context()).Save(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan kamar")
	}

	h.invalidateCache(c.Context())
	return helper.JsonUpdated(c, "Kamar diperbarui", dto.FromModel(m))
}

// DELETE /api/o/kamar/:id
func (h *KamarController) Delete(c *fiber.Ctx) error {
	m, err := h.findByID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	active, err := h.hasActiveSewa(c.Context(), m.KamarID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if active {
		return helper.JsonError(c, fiber.StatusConflict, "Kamar masih punya sewa aktif, tidak bisa dihapus")
	}

	if err := h.DB.WithContext(c.Context()).Delete(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus kamar")
	}

	h.invalidateCache(c.Context())
	return helper.JsonDeleted(c, "Kamar dihapus", fiber.Map{"kamar_id": m.KamarID})
}

/* ======================= PUBLIC ======================= */

// GET /api/public/kamar/available — listing untuk calon penyewa, di-cache 60 detik.
func (h *KamarController) ListAvailable(c *fiber.Ctx) error {
	if h.Cache != nil {
		if raw, err := h.Cache.Get(c.Context(), availableCacheKey).Result(); err == nil && raw != "" {
			var cached []dto.KamarResponse
			if err := sonic.Unmarshal([]byte(raw), &cached); err == nil {
				return helper.JsonOK(c, "ok (cache)", cached)
			}
		}
	}

	var rows []model.KamarModel
	if err := h.DB.WithContext(c.Context()).
		Where("kamar_status = ? AND kamar_harga_bulanan > 0", model.KamarStatusAvailable).
		Order("kamar_nomor asc").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	resp := dto.FromModels(rows)
	if h.Cache != nil {
		if raw, err := sonic.Marshal(resp); err == nil {
			_ = h.Cache.Set(c.Context(), availableCacheKey, raw, 60*time.Second).Err()
		}
	}
	return helper.JsonOK(c, "ok", resp)
}

/* ======================= Internal ======================= */

func (h *KamarController) findByID(c *fiber.Ctx) (*model.KamarModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID kamar tidak valid")
	}
	var m model.KamarModel
	if err := h.DB.WithContext(c.Context()).First(&m, "kamar_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Kamar tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &m, nil
}

func (h *KamarController) hasActiveSewa(ctx context.Context, kamarID uuid.UUID) (bool, error) {
	var n int64
	err := h.DB.WithContext(ctx).
		Table("riwayat_sewa").
		Where("riwayat_sewa_kamar_id = ? AND riwayat_sewa_status = 'ACTIVE' AND riwayat_sewa_deleted_at IS NULL", kamarID).
		Count(&n).Error
	return n > 0, err
}

func (h *KamarController) invalidateCache(ctx context.Context) {
	if h.Cache != nil {
		_ = h.Cache.Del(ctx, availableCacheKey).Err()
	}
}
