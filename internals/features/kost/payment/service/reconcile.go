package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	kamarModel "kostku_backend/internals/features/kost/kamar/model"
	paymentModel "kostku_backend/internals/features/kost/payment/model"
	sewaModel "kostku_backend/internals/features/kost/sewa/model"
	tagihanModel "kostku_backend/internals/features/kost/tagihan/model"
)

/* =========================================================
   Status mapping (murni, tanpa side effect)
========================================================= */

// MapGatewayStatus memetakan transaction_status + fraud_status Midtrans
// ke status payment internal:
//
//	capture/settlement + fraud accept/kosong → SUCCESS
//	capture/settlement + fraud lainnya       → PENDING (belum terputuskan)
//	cancel/deny                              → FAILED
//	expire                                   → EXPIRED
//	selain itu (pending, dll)                → PENDING
func MapGatewayStatus(transactionStatus, fraudStatus string) string {
	ts := strings.ToLower(strings.TrimSpace(transactionStatus))
	fraud := strings.ToLower(strings.TrimSpace(fraudStatus))

	switch ts {
	case "capture", "settlement":
		if fraud == "" || fraud == "accept" {
			return paymentModel.PaymentStatusSuccess
		}
		return paymentModel.PaymentStatusPending
	case "cancel", "deny":
		return paymentModel.PaymentStatusFailed
	case "expire":
		return paymentModel.PaymentStatusExpired
	default:
		return paymentModel.PaymentStatusPending
	}
}

/* =========================================================
   Reconciliation Engine
========================================================= */

// GatewayNotification: fakta yang dilaporkan gateway untuk satu order.
type GatewayNotification struct {
	TransactionStatus string
	FraudStatus       string
	TransactionID     string
	PaymentType       string
	VANumbers         []map[string]any
}

// ReconcileOutcome hasil satu langkah rekonsiliasi.
type ReconcileOutcome struct {
	Payment *paymentModel.PaymentModel
	Applied bool   // false = no-op (payment sudah terminal)
	Message string
}

// Engine adalah SATU-SATUNYA penulis transisi status
// Payment/Tagihan/RiwayatSewa/Kamar. Webhook, sync, verifikasi manual,
// dan cancel semua lewat sini.
type Engine struct {
	DB       *gorm.DB
	Notifier Notifier
}

func NewEngine(db *gorm.DB, notifier Notifier) *Engine {
	if notifier == nil {
		notifier = NewConsoleNotifier()
	}
	return &Engine{DB: db, Notifier: notifier}
}

// Reconcile menerapkan status gateway ke payment ber-order code tersebut.
// Payment di-fetch ulang DI DALAM transaksi dan status terminalnya dicek
// di sana, supaya dua caller (webhook vs sync) yang balapan tidak saling
// menimpa transisi.
func (e *Engine) Reconcile(ctx context.Context, orderCode string, notif GatewayNotification) (*ReconcileOutcome, error) {
	target := MapGatewayStatus(notif.TransactionStatus, notif.FraudStatus)

	out := &ReconcileOutcome{}
	err := e.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p paymentModel.PaymentModel
		if err := tx.First(&p, "payment_order_code = ?", orderCode).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "Payment untuk order "+orderCode+" tidak ditemukan")
			}
			return err
		}

		if p.IsTerminal() {
			out.Payment = &p
			out.Applied = false
			out.Message = "Payment sudah diproses sebelumnya"
			return nil
		}

		now := time.Now()
		applyGatewayMeta(&p, notif)

		switch target {
		case paymentModel.PaymentStatusSuccess:
			if err := e.applySuccess(tx, &p, now); err != nil {
				return err
			}
		case paymentModel.PaymentStatusFailed, paymentModel.PaymentStatusExpired:
			if err := e.applyFailure(tx, &p, target, now); err != nil {
				return err
			}
		default:
			// PENDING: hanya metadata gateway yang diperbarui.
			if err := tx.Save(&p).Error; err != nil {
				return err
			}
		}

		out.Payment = &p
		out.Applied = true
		out.Message = "Status payment: " + p.PaymentStatus
		return nil
	})
	if err != nil {
		return nil, err
	}

	if out.Applied {
		e.notifyOutcome(ctx, out.Payment)
	}
	return out, nil
}

// VerifyManual: verifikasi manual oleh owner — transisi SUCCESS yang sama
// dengan jalur otomatis (termasuk perpanjangan sewa), gateway "manual".
func (e *Engine) VerifyManual(ctx context.Context, paymentID, verifierID uuid.UUID) (*paymentModel.PaymentModel, error) {
	var result *paymentModel.PaymentModel
	err := e.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p paymentModel.PaymentModel
		if err := tx.First(&p, "payment_id = ?", paymentID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "Payment tidak ditemukan")
			}
			return err
		}
		if p.PaymentStatus == paymentModel.PaymentStatusSuccess {
			return fiber.NewError(fiber.StatusBadRequest, "Payment sudah SUCCESS")
		}

		now := time.Now()
		p.PaymentGateway = paymentModel.PaymentGatewayManual
		p.PaymentVerifiedBy = &verifierID
		p.PaymentVerifiedAt = &now

		if err := e.applySuccess(tx, &p, now); err != nil {
			return err
		}
		result = &p
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.notifyOutcome(ctx, result)
	return result, nil
}

// Cancel: pembatalan oleh penyewa/owner. Hanya payment PENDING; rollback
// tagihan/sewa/kamar sama dengan jalur FAILED.
func (e *Engine) Cancel(ctx context.Context, paymentID, requesterID uuid.UUID, elevated bool) (*paymentModel.PaymentModel, error) {
	var result *paymentModel.PaymentModel
	err := e.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p paymentModel.PaymentModel
		if err := tx.First(&p, "payment_id = ?", paymentID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "Payment tidak ditemukan")
			}
			return err
		}
		if !elevated && p.PaymentUserID != requesterID {
			return fiber.NewError(fiber.StatusForbidden, "Payment ini bukan milik Anda")
		}
		if !p.IsPending() {
			return fiber.NewError(fiber.StatusBadRequest, "Hanya payment PENDING yang bisa dibatalkan")
		}

		if err := e.applyFailure(tx, &p, paymentModel.PaymentStatusCancel, time.Now()); err != nil {
			return err
		}
		result = &p
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.notifyOutcome(ctx, result)
	return result, nil
}

/* =========================================================
   Transisi internal (selalu dipanggil di dalam transaksi)
========================================================= */

// applySuccess: payment SUCCESS + tagihan PAID + perpanjangan sewa kalau
// tagihannya tagihan perpanjangan. Booking baru tidak butuh perubahan
// tanggal — sewanya sudah di-tanggal-kan saat booking.
func (e *Engine) applySuccess(tx *gorm.DB, p *paymentModel.PaymentModel, now time.Time) error {
	p.PaymentStatus = paymentModel.PaymentStatusSuccess
	p.PaymentPaidAt = &now
	if err := tx.Save(p).Error; err != nil {
		return err
	}

	var tagihan tagihanModel.TagihanModel
	if err := tx.First(&tagihan, "tagihan_id = ?", p.PaymentTagihanID).Error; err != nil {
		return err
	}
	if err := tx.Model(&tagihanModel.TagihanModel{}).
		Where("tagihan_id = ?", tagihan.TagihanID).
		Update("tagihan_status", tagihanModel.TagihanStatusPaid).Error; err != nil {
		return err
	}

	if bulan := tagihan.PerpanjanganBulan(); bulan > 0 && tagihan.TagihanSewaID != nil {
		var sewa sewaModel.RiwayatSewaModel
		if err := tx.First(&sewa, "riwayat_sewa_id = ?", *tagihan.TagihanSewaID).Error; err != nil {
			return err
		}
		if err := tx.Model(&sewaModel.RiwayatSewaModel{}).
			Where("riwayat_sewa_id = ?", sewa.SewaID).
			Updates(map[string]any{
				"riwayat_sewa_selesai":      sewa.SewaSelesai.AddDate(0, bulan, 0),
				"riwayat_sewa_durasi_bulan": sewa.SewaDurasiBulan + bulan,
			}).Error; err != nil {
			return err
		}
	}
	return nil
}

// applyFailure: payment FAILED/EXPIRED/CANCEL + tagihan OVERDUE.
// Untuk pembayaran booking awal (bukan perpanjangan) yang mereferensikan
// sewa: sewa CANCELLED dengan selesai = sekarang, kamar balik AVAILABLE.
// Kegagalan perpanjangan tidak menyentuh sewa berjalan.
func (e *Engine) applyFailure(tx *gorm.DB, p *paymentModel.PaymentModel, status string, now time.Time) error {
	p.PaymentStatus = status
	if err := tx.Save(p).Error; err != nil {
		return err
	}

	var tagihan tagihanModel.TagihanModel
	if err := tx.First(&tagihan, "tagihan_id = ?", p.PaymentTagihanID).Error; err != nil {
		return err
	}
	if err := tx.Model(&tagihanModel.TagihanModel{}).
		Where("tagihan_id = ?", tagihan.TagihanID).
		Update("tagihan_status", tagihanModel.TagihanStatusOverdue).Error; err != nil {
		return err
	}

	if tagihan.IsPerpanjangan() || p.PaymentSewaID == nil {
		return nil
	}

	var sewa sewaModel.RiwayatSewaModel
	if err := tx.First(&sewa, "riwayat_sewa_id = ?", *p.PaymentSewaID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}
	if !sewa.IsActive() {
		return nil
	}

	if err := tx.Model(&sewaModel.RiwayatSewaModel{}).
		Where("riwayat_sewa_id = ?", sewa.SewaID).
		Updates(map[string]any{
			"riwayat_sewa_status":  sewaModel.SewaStatusCancelled,
			"riwayat_sewa_selesai": now,
		}).Error; err != nil {
		return err
	}
	return tx.Model(&kamarModel.KamarModel{}).
		Where("kamar_id = ?", sewa.SewaKamarID).
		Update("kamar_status", kamarModel.KamarStatusAvailable).Error
}

func applyGatewayMeta(p *paymentModel.PaymentModel, notif GatewayNotification) {
	if notif.TransactionID != "" {
		v := notif.TransactionID
		p.PaymentTransactionID = &v
	}
	if notif.PaymentType != "" {
		v := notif.PaymentType
		p.PaymentMethod = &v
	}
	if len(notif.VANumbers) > 0 {
		if p.PaymentMeta == nil {
			p.PaymentMeta = datatypes.JSONMap{}
		}
		p.PaymentMeta["va_numbers"] = notif.VANumbers
	}
}

// notifyOutcome kirim notifikasi best-effort setelah transaksi commit.
func (e *Engine) notifyOutcome(ctx context.Context, p *paymentModel.PaymentModel) {
	if p == nil {
		return
	}

	var key string
	switch p.PaymentStatus {
	case paymentModel.PaymentStatusSuccess:
		key = RKPaymentSuccess
	case paymentModel.PaymentStatusFailed, paymentModel.PaymentStatusExpired, paymentModel.PaymentStatusCancel:
		key = RKPaymentFailed
	default:
		return
	}

	var nomor string
	var t tagihanModel.TagihanModel
	if err := e.DB.WithContext(ctx).First(&t, "tagihan_id = ?", p.PaymentTagihanID).Error; err == nil {
		nomor = t.TagihanNomor
	}

	ev := PaymentEvent{
		OrderCode:    p.PaymentOrderCode,
		UserID:       p.PaymentUserID.String(),
		TagihanNomor: nomor,
		Nominal:      p.PaymentNominal,
		Status:       p.PaymentStatus,
	}
	if err := e.Notifier.Notify(ctx, key, ev); err != nil {
		log.Printf("[WARN] gagal kirim notifikasi %s untuk order %s: %v", key, p.PaymentOrderCode, err)
	}
}
