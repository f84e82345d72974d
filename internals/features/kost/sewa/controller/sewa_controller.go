package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	dto "kostku_backend/internals/features/kost/sewa/dto"
	model "kostku_backend/internals/features/kost/sewa/model"
	svc "kostku_backend/internals/features/kost/sewa/service"
	tagihanDto "kostku_backend/internals/features/kost/tagihan/dto"
	helper "kostku_backend/internals/helpers"
)

type SewaController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Service   *svc.BookingService
	Cache     *redis.Client // boleh nil
}

func NewSewaController(db *gorm.DB, cache *redis.Client) *SewaController {
	return &SewaController{
		DB:        db,
		Validator: validator.New(),
		Service:   svc.NewBookingService(db),
		Cache:     cache,
	}
}

/* ======================= PENYEWA ======================= */

// POST /api/u/sewa/booking
func (h *SewaController) CreateBooking(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validator.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	res, err := h.Service.CreateBooking(c.Context(), userID, req.KamarID, req.DurasiBulan)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	h.invalidateKamarCache(c)
	return helper.JsonCreated(c, "Booking berhasil dibuat, segera bayar tagihan dalam 24 jam", fiber.Map{
		"sewa":    dto.FromModel(res.Sewa),
		"tagihan": tagihanDto.FromModel(res.Tagihan),
		"kamar":   res.Kamar,
		"total":   res.Total,
	})
}

// POST /api/u/sewa/perpanjangan
func (h *SewaController) CreatePerpanjangan(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreatePerpanjanganRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validator.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	tagihan, err := h.Service.CreatePerpanjangan(c.Context(), userID, req.Bulan)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Tagihan perpanjangan dibuat, lanjutkan pembayaran", tagihanDto.FromModel(tagihan))
}

// GET /api/u/sewa — sewa milik user yang login (aktif + riwayat)
func (h *SewaController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []model.RiwayatSewaModel
	if err := h.DB.WithContext(c.Context()).
		Where("riwayat_sewa_user_id = ?", userID).
		Order("riwayat_sewa_created_at desc").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.FromModels(rows))
}

/* ======================= OWNER ======================= */

// GET /api/o/sewa
func (h *SewaController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := h.DB.WithContext(c.Context()).Model(&model.RiwayatSewaModel{})
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("riwayat_sewa_status = ?", strings.ToUpper(status))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.RiwayatSewaModel
	if err := q.Order("riwayat_sewa_created_at desc").Offset(paging.Offset).Limit(paging.Limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", dto.FromModels(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /api/o/sewa/:id
func (h *SewaController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID sewa tidak valid")
	}
	var m model.RiwayatSewaModel
	if err := h.DB.WithContext(c.Context()).First(&m, "riwayat_sewa_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Sewa tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.FromModel(&m))
}

// POST /api/o/sewa/:id/complete
func (h *SewaController) Complete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID sewa tidak valid")
	}

	sewa, err := h.Service.CompleteSewa(c.Context(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	h.invalidateKamarCache(c)
	return helper.JsonUpdated(c, "Sewa diselesaikan", dto.FromModel(sewa))
}

// POST /api/o/tagihan/generate-bulanan
func (h *SewaController) GenerateMonthly(c *fiber.Ctx) error {
	res, err := h.Service.GenerateMonthlyTagihan(c.Context())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Generate tagihan bulanan selesai", fiber.Map{
		"generated": res.Generated,
		"tagihan":   tagihanDto.FromModels(res.Tagihan),
	})
}

/* ======================= Internal ======================= */

func (h *SewaController) invalidateKamarCache(c *fiber.Ctx) {
	if h.Cache != nil {
		_ = h.Cache.Del(c.Context(), "kamar:available").Err()
	}
}
