package controller

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kostku_backend/internals/configs"
	dto "kostku_backend/internals/features/kost/payment/dto"
	model "kostku_backend/internals/features/kost/payment/model"
	svc "kostku_backend/internals/features/kost/payment/service"
	tagihanModel "kostku_backend/internals/features/kost/tagihan/model"
	helper "kostku_backend/internals/helpers"
)

type PaymentController struct {
	DB                *gorm.DB
	Validator         *validator.Validate
	Engine            *svc.Engine
	MidtransServerKey string // dipakai untuk verify signature webhook
	MidtransClientKey string // dikirim ke frontend untuk Snap.js
}

func NewPaymentController(db *gorm.DB, engine *svc.Engine, midtransServerKey, midtransClientKey string) *PaymentController {
	return &PaymentController{
		DB:                db,
		Validator:         validator.New(),
		Engine:            engine,
		MidtransServerKey: midtransServerKey,
		MidtransClientKey: midtransClientKey,
	}
}

// GET /api/public/payments/config — client key + environment untuk Snap.js.
// Server key tidak pernah ikut ke sini.
func (h *PaymentController) Config(c *fiber.Ctx) error {
	return helper.JsonOK(c, "ok", fiber.Map{
		"client_key": h.MidtransClientKey,
		"production": configs.MidtransUseProd,
	})
}

/* =======================================================================
   Create / Cancel / Verify
======================================================================= */

// POST /api/u/payments — buka transaksi Snap untuk satu tagihan
func (h *PaymentController) CreatePayment(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validator.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var tagihan tagihanModel.TagihanModel
	if err := h.DB.WithContext(c.Context()).First(&tagihan, "tagihan_id = ?", req.TagihanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Tagihan tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if tagihan.TagihanStatus == tagihanModel.TagihanStatusPaid {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tagihan sudah dibayar")
	}
	if tagihan.TagihanUserID != userID {
		return helper.JsonError(c, fiber.StatusForbidden, "Tagihan ini bukan milik Anda")
	}

	p := &model.PaymentModel{
		PaymentOrderCode: helper.GenerateOrderCode(helper.CodePrefixPayment),
		PaymentUserID:    userID,
		PaymentTagihanID: tagihan.TagihanID,
		PaymentSewaID:    tagihan.TagihanSewaID,
		PaymentNominal:   tagihan.TagihanNominal,
		PaymentStatus:    model.PaymentStatusPending,
		PaymentGateway:   model.PaymentGatewayMidtrans,
	}

	cust := h.lookupCustomer(c, userID)
	itemName := "Pembayaran " + tagihan.TagihanNomor
	if tagihan.TagihanKeterangan != nil && *tagihan.TagihanKeterangan != "" {
		itemName = *tagihan.TagihanKeterangan
	}

	token, redirectURL, err := svc.CreateSnapTransaction(p, itemName, cust)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, "Gagal memproses pembayaran, coba lagi")
	}
	p.PaymentSnapToken = &token
	p.PaymentRedirectURL = &redirectURL

	if err := h.DB.WithContext(c.Context()).Create(p).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan payment")
	}

	return helper.JsonCreated(c, "Payment dibuat, lanjutkan ke halaman pembayaran", fiber.Map{
		"payment":      dto.FromModel(p),
		"snap_token":   token,
		"redirect_url": redirectURL,
	})
}

// POST /api/u/payments/:id/cancel — hanya payment PENDING milik sendiri
// (atau oleh owner)
func (h *PaymentController) CancelPayment(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	paymentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID payment tidak valid")
	}

	p, err := h.Engine.Cancel(c.Context(), paymentID, userID, helper.IsOwner(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Payment dibatalkan", dto.FromModel(p))
}

// POST /api/o/payments/:id/verify — verifikasi manual oleh owner
func (h *PaymentController) VerifyPayment(c *fiber.Ctx) error {
	verifierID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	paymentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID payment tidak valid")
	}

	p, err := h.Engine.VerifyManual(c.Context(), paymentID, verifierID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Payment diverifikasi manual", dto.FromModel(p))
}

/* =======================================================================
   Webhook Midtrans
======================================================================= */

// POST /api/public/payments/midtrans/webhook
// Selalu balas 200 supaya Midtrans tidak retry payload yang sama terus.
func (h *PaymentController) MidtransWebhook(c *fiber.Ctx) error {
	var notif dto.MidtransNotification
	if err := c.BodyParser(&notif); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid: "+err.Error())
	}

	// Verify signature — SHA512(order_id + status_code + gross_amount + ServerKey)
	want := strings.ToLower(notif.SignatureKey)
	got := sha512sum(notif.OrderID + notif.StatusCode + notif.GrossAmount + h.MidtransServerKey)
	if want == "" || got != want {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Signature tidak valid")
	}

	out, err := h.Engine.Reconcile(c.Context(), notif.OrderID, svc.GatewayNotification{
		TransactionStatus: notif.TransactionStatus,
		FraudStatus:       notif.FraudStatus,
		TransactionID:     notif.TransactionID,
		PaymentType:       notif.PaymentType,
		VANumbers:         notif.VANumbers,
	})
	if err != nil {
		// Payment tidak dikenal / gagal proses → tetap 200, tandai ignored.
		return helper.JsonOK(c, "ignored", fiber.Map{
			"order_id":  notif.OrderID,
			"processed": false,
			"reason":    err.Error(),
		})
	}

	return helper.JsonOK(c, "webhook processed", fiber.Map{
		"order_id":           notif.OrderID,
		"processed":          out.Applied,
		"payment_status":     out.Payment.PaymentStatus,
		"transaction_status": notif.TransactionStatus,
		"fraud_status":       notif.FraudStatus,
	})
}

/* =======================================================================
   Sync (poll status by order code)
======================================================================= */

// GET /api/u/payments/sync/:order_code
// Polling status ke Midtrans lalu rekonsiliasi. Kalau gateway tidak bisa
// dihubungi, balikan status lokal terakhir (tidak error).
func (h *PaymentController) SyncByOrderCode(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	orderCode := strings.TrimSpace(c.Params("order_code"))
	if orderCode == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Order code wajib diisi")
	}

	var p model.PaymentModel
	if err := h.DB.WithContext(c.Context()).First(&p, "payment_order_code = ?", orderCode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Payment tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if p.PaymentUserID != userID && !helper.IsOwner(c) {
		return helper.JsonError(c, fiber.StatusForbidden, "Payment ini bukan milik Anda")
	}

	if p.PaymentStatus == model.PaymentStatusSuccess {
		return helper.JsonOK(c, "Pembayaran sudah terverifikasi", dto.FromModel(&p))
	}

	resp, err := svc.CheckTransactionStatus(orderCode)
	if err != nil {
		return helper.JsonOK(c, "Gagal menghubungi gateway, menampilkan status terakhir", dto.FromModel(&p))
	}

	vaNumbers := make([]map[string]any, 0, len(resp.VaNumbers))
	for _, va := range resp.VaNumbers {
		vaNumbers = append(vaNumbers, map[string]any{
			"bank":      va.Bank,
			"va_number": va.VANumber,
		})
	}

	out, err := h.Engine.Reconcile(c.Context(), orderCode, svc.GatewayNotification{
		TransactionStatus: resp.TransactionStatus,
		FraudStatus:       resp.FraudStatus,
		TransactionID:     resp.TransactionID,
		PaymentType:       resp.PaymentType,
		VANumbers:         vaNumbers,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, out.Message, dto.FromModel(out.Payment))
}

/* =======================================================================
   Listing
======================================================================= */

// GET /api/u/payments — payment milik user yang login
func (h *PaymentController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []model.PaymentModel
	if err := h.DB.WithContext(c.Context()).
		Where("payment_user_id = ?", userID).
		Order("payment_created_at desc").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.FromModels(rows))
}

// GET /api/o/payments
func (h *PaymentController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := h.DB.WithContext(c.Context()).Model(&model.PaymentModel{})
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("payment_status = ?", strings.ToUpper(status))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.PaymentModel
	if err := q.Order("payment_created_at desc").Offset(paging.Offset).Limit(paging.Limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", dto.FromModels(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

/* =======================================================================
   Helpers
======================================================================= */

func sha512sum(s string) string {
	h := sha512.Sum512([]byte(s))
	return hex.EncodeToString(h[:])
}

func (h *PaymentController) lookupCustomer(c *fiber.Ctx, userID uuid.UUID) svc.CustomerInput {
	var row struct {
		Name  string  `gorm:"column:user_name"`
		Email string  `gorm:"column:user_email"`
		Phone *string `gorm:"column:user_phone"`
	}
	_ = h.DB.WithContext(c.Context()).
		Table("users").
		Select("user_name, user_email, user_phone").
		Where("user_id = ?", userID).
		Take(&row).Error

	cust := svc.CustomerInput{Name: row.Name, Email: row.Email}
	if row.Phone != nil {
		cust.Phone = *row.Phone
	}
	return cust
}
