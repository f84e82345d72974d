package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "kostku_backend/internals/features/kost/tagihan/dto"
	model "kostku_backend/internals/features/kost/tagihan/model"
	helper "kostku_backend/internals/helpers"
)

type TagihanController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewTagihanController(db *gorm.DB) *TagihanController {
	return &TagihanController{DB: db, Validator: validator.New()}
}

/* ======================= OWNER ======================= */

// POST /api/o/tagihan — tagihan manual (utilitas, perpanjangan, dll)
func (h *TagihanController) Create(c *fiber.Ctx) error {
	var req dto.CreateTagihanRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validator.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if req.TagihanJenis == model.TagihanJenisPerpanjangan {
		if req.TagihanPerpanjanganBulan < 1 || req.TagihanPerpanjanganBulan > 24 {
			return helper.JsonError(c, fiber.StatusBadRequest, "Tagihan perpanjangan wajib mengisi jumlah bulan (1-24)")
		}
		if req.TagihanSewaID == nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Tagihan perpanjangan wajib terhubung ke sewa")
		}
	}

	m := req.ToModel(helper.GenerateOrderCode(helper.CodePrefixTagihan))
	if err := h.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "Nomor tagihan bentrok, coba lagi")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat tagihan")
	}

	return helper.JsonCreated(c, "Tagihan berhasil dibuat", dto.FromModel(m))
}

// GET /api/o/tagihan
func (h *TagihanController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := h.DB.WithContext(c.Context()).Model(&model.TagihanModel{})
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("tagihan_status = ?", strings.ToUpper(status))
	}
	if jenis := strings.TrimSpace(c.Query("jenis")); jenis != "" {
		q = q.Where("tagihan_jenis = ?", strings.ToLower(jenis))
	}
	if userID := strings.TrimSpace(c.Query("user_id")); userID != "" {
		uid, err := uuid.Parse(userID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "user_id tidak valid")
		}
		q = q.Where("tagihan_user_id = ?", uid)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.TagihanModel
	if err := q.Order("tagihan_jatuh_tempo desc").Offset(paging.Offset).Limit(paging.Limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", dto.FromModels(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /api/o/tagihan/:id
func (h *TagihanController) GetByID(c *fiber.Ctx) error {
	m, err := h.findByID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

// PATCH /api/o/tagihan/:id
func (h *TagihanController) Update(c *fiber.Ctx) error {
	m, err := h.findByID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateTagihanRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validator.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	req.Apply(m)
	if err := h.DB.WithContext(c.Context()).Save(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan tagihan")
	}
	return helper.JsonUpdated(c, "Tagihan diperbarui", dto.FromModel(m))
}

// DELETE /api/o/tagihan/:id — tagihan PAID tidak boleh dihapus (jejak audit)
func (h *TagihanController) Delete(c *fiber.Ctx) error {
	m, err := h.findByID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if m.TagihanStatus == model.TagihanStatusPaid {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tagihan yang sudah dibayar tidak bisa dihapus")
	}

	if err := h.DB.WithContext(c.Context()).Delete(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus tagihan")
	}
	return helper.JsonDeleted(c, "Tagihan dihapus", fiber.Map{"tagihan_id": m.TagihanID})
}

/* ======================= PENYEWA ======================= */

// GET /api/u/tagihan — tagihan milik user yang login
func (h *TagihanController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []model.TagihanModel
	if err := h.DB.WithContext(c.Context()).
		Where("tagihan_user_id = ?", userID).
		Order("tagihan_jatuh_tempo desc").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.FromModels(rows))
}

// GET /api/u/tagihan/:id — detail, hanya milik sendiri
func (h *TagihanController) GetMineByID(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	m, err := h.findByID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if m.TagihanUserID != userID {
		return helper.JsonError(c, fiber.StatusForbidden, "Tagihan ini bukan milik Anda")
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

/* ======================= Internal ======================= */

func (h *TagihanController) findByID(c *fiber.Ctx) (*model.TagihanModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID tagihan tidak valid")
	}
	var m model.TagihanModel
	if err := h.DB.WithContext(c.Context()).First(&m, "tagihan_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Tagihan tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &m, nil
}
