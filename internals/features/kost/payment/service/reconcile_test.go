package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	kamarModel "kostku_backend/internals/features/kost/kamar/model"
	paymentModel "kostku_backend/internals/features/kost/payment/model"
	sewaModel "kostku_backend/internals/features/kost/sewa/model"
	tagihanModel "kostku_backend/internals/features/kost/tagihan/model"
	helper "kostku_backend/internals/helpers"
)

func TestMapGatewayStatus(t *testing.T) {
	cases := []struct {
		name        string
		transaction string
		fraud       string
		want        string
	}{
		{"settlement tanpa fraud", "settlement", "", paymentModel.PaymentStatusSuccess},
		{"capture accept", "capture", "accept", paymentModel.PaymentStatusSuccess},
		{"capture challenge tetap pending", "capture", "challenge", paymentModel.PaymentStatusPending},
		{"settlement deny fraud tetap pending", "settlement", "deny", paymentModel.PaymentStatusPending},
		{"cancel", "cancel", "", paymentModel.PaymentStatusFailed},
		{"deny", "deny", "", paymentModel.PaymentStatusFailed},
		{"expire", "expire", "", paymentModel.PaymentStatusExpired},
		{"pending", "pending", "", paymentModel.PaymentStatusPending},
		{"status asing", "refund_coming_soon", "", paymentModel.PaymentStatusPending},
		{"case-insensitive + spasi", "  SETTLEMENT  ", "ACCEPT", paymentModel.PaymentStatusSuccess},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MapGatewayStatus(tc.transaction, tc.fraud); got != tc.want {
				t.Fatalf("MapGatewayStatus(%q, %q) = %q, want %q", tc.transaction, tc.fraud, got, tc.want)
			}
		})
	}
}

/* =========================================================
   Engine — pakai sqlite in-memory
========================================================= */

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("buka sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&kamarModel.KamarModel{},
		&sewaModel.RiwayatSewaModel{},
		&tagihanModel.TagihanModel{},
		&paymentModel.PaymentModel{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

type fixture struct {
	Kamar   kamarModel.KamarModel
	Sewa    sewaModel.RiwayatSewaModel
	Tagihan tagihanModel.TagihanModel
	Payment paymentModel.PaymentModel
}

// seedBooking bikin rantai kamar OCCUPIED → sewa ACTIVE → tagihan sewa
// UNPAID → payment PENDING, seperti hasil CreateBooking + CreatePayment.
func seedBooking(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	userID := uuid.New()
	now := time.Now()

	kamar := kamarModel.KamarModel{
		KamarNomor:        "A-01",
		KamarNama:         "Kamar Test",
		KamarHargaBulanan: 1_000_000,
		KamarStatus:       kamarModel.KamarStatusOccupied,
	}
	if err := db.Create(&kamar).Error; err != nil {
		t.Fatalf("seed kamar: %v", err)
	}

	sewa := sewaModel.RiwayatSewaModel{
		SewaNomor:        helper.GenerateOrderCode(helper.CodePrefixSewa),
		SewaUserID:       userID,
		SewaKamarID:      kamar.KamarID,
		SewaMulai:        now,
		SewaSelesai:      now.AddDate(0, 3, 0),
		SewaHargaBulanan: 1_000_000,
		SewaDurasiBulan:  3,
		SewaStatus:       sewaModel.SewaStatusActive,
	}
	if err := db.Create(&sewa).Error; err != nil {
		t.Fatalf("seed sewa: %v", err)
	}

	ket := "Sewa kamar " + kamar.KamarNomor + " untuk 3 bulan"
	tagihan := tagihanModel.TagihanModel{
		TagihanNomor:      helper.GenerateOrderCode(helper.CodePrefixTagihan),
		TagihanUserID:     userID,
		TagihanSewaID:     &sewa.SewaID,
		TagihanJenis:      tagihanModel.TagihanJenisSewa,
		TagihanNominal:    3_000_000,
		TagihanJatuhTempo: now.Add(24 * time.Hour),
		TagihanKeterangan: &ket,
		TagihanStatus:     tagihanModel.TagihanStatusUnpaid,
	}
	if err := db.Create(&tagihan).Error; err != nil {
		t.Fatalf("seed tagihan: %v", err)
	}

	payment := paymentModel.PaymentModel{
		PaymentOrderCode: helper.GenerateOrderCode(helper.CodePrefixPayment),
		PaymentUserID:    userID,
		PaymentTagihanID: tagihan.TagihanID,
		PaymentSewaID:    &sewa.SewaID,
		PaymentNominal:   tagihan.TagihanNominal,
		PaymentStatus:    paymentModel.PaymentStatusPending,
		PaymentGateway:   paymentModel.PaymentGatewayMidtrans,
	}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatalf("seed payment: %v", err)
	}

	return fixture{Kamar: kamar, Sewa: sewa, Tagihan: tagihan, Payment: payment}
}

func TestEngineReconcileSettlement(t *testing.T) {
	db := newTestDB(t)
	fx := seedBooking(t, db)
	engine := NewEngine(db, nil)

	out, err := engine.Reconcile(context.Background(), fx.Payment.PaymentOrderCode, GatewayNotification{
		TransactionStatus: "settlement",
		TransactionID:     "mid-trx-123",
		PaymentType:       "bank_transfer",
		VANumbers:         []map[string]any{{"bank": "bca", "va_number": "1234567890"}},
	})
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if !out.Applied {
		t.Fatal("harusnya applied")
	}
	if out.Payment.PaymentStatus != paymentModel.PaymentStatusSuccess {
		t.Fatalf("payment status = %s, want SUCCESS", out.Payment.PaymentStatus)
	}
	if out.Payment.PaymentPaidAt == nil {
		t.Fatal("paid_at harusnya terisi")
	}
	if out.Payment.PaymentTransactionID == nil || *out.Payment.PaymentTransactionID != "mid-trx-123" {
		t.Fatal("transaction_id gateway harusnya tersimpan")
	}

	var tagihan tagihanModel.TagihanModel
	if err := db.First(&tagihan, "tagihan_id = ?", fx.Tagihan.TagihanID).Error; err != nil {
		t.Fatalf("reload tagihan: %v", err)
	}
	if tagihan.TagihanStatus != tagihanModel.TagihanStatusPaid {
		t.Fatalf("tagihan status = %s, want PAID", tagihan.TagihanStatus)
	}

	// Booking awal: sewa tidak boleh berubah tanggal.
	var sewa sewaModel.RiwayatSewaModel
	if err := db.First(&sewa, "riwayat_sewa_id = ?", fx.Sewa.SewaID).Error; err != nil {
		t.Fatalf("reload sewa: %v", err)
	}
	if sewa.SewaDurasiBulan != 3 {
		t.Fatalf("durasi sewa berubah jadi %d", sewa.SewaDurasiBulan)
	}
}

func TestEngineReconcileExpireMembatalkanBooking(t *testing.T) {
	db := newTestDB(t)
	fx := seedBooking(t, db)
	engine := NewEngine(db, nil)

	out, err := engine.Reconcile(context.Background(), fx.Payment.PaymentOrderCode, GatewayNotification{
		TransactionStatus: "expire",
	})
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if out.Payment.PaymentStatus != paymentModel.PaymentStatusExpired {
		t.Fatalf("payment status = %s, want EXPIRED", out.Payment.PaymentStatus)
	}

	var tagihan tagihanModel.TagihanModel
	db.First(&tagihan, "tagihan_id = ?", fx.Tagihan.TagihanID)
	if tagihan.TagihanStatus != tagihanModel.TagihanStatusOverdue {
		t.Fatalf("tagihan status = %s, want OVERDUE", tagihan.TagihanStatus)
	}

	var sewa sewaModel.RiwayatSewaModel
	db.First(&sewa, "riwayat_sewa_id = ?", fx.Sewa.SewaID)
	if sewa.SewaStatus != sewaModel.SewaStatusCancelled {
		t.Fatalf("sewa status = %s, want CANCELLED", sewa.SewaStatus)
	}

	var kamar kamarModel.KamarModel
	db.First(&kamar, "kamar_id = ?", fx.Kamar.KamarID)
	if kamar.KamarStatus != kamarModel.KamarStatusAvailable {
		t.Fatalf("kamar status = %s, want AVAILABLE", kamar.KamarStatus)
	}
}

func TestEngineReconcilePerpanjanganSukses(t *testing.T) {
	db := newTestDB(t)
	fx := seedBooking(t, db)
	engine := NewEngine(db, nil)

	// Tagihan perpanjangan legacy: jumlah bulan cuma ada di keterangan.
	ket := "Perpanjangan sewa untuk 6 bulan"
	tagihan := tagihanModel.TagihanModel{
		TagihanNomor:      helper.GenerateOrderCode(helper.CodePrefixTagihan),
		TagihanUserID:     fx.Sewa.SewaUserID,
		TagihanSewaID:     &fx.Sewa.SewaID,
		TagihanJenis:      tagihanModel.TagihanJenisLainnya,
		TagihanNominal:    6_000_000,
		TagihanJatuhTempo: time.Now().Add(24 * time.Hour),
		TagihanKeterangan: &ket,
		TagihanStatus:     tagihanModel.TagihanStatusUnpaid,
	}
	if err := db.Create(&tagihan).Error; err != nil {
		t.Fatalf("seed tagihan perpanjangan: %v", err)
	}
	payment := paymentModel.PaymentModel{
		PaymentOrderCode: helper.GenerateOrderCode(helper.CodePrefixPayment),
		PaymentUserID:    fx.Sewa.SewaUserID,
		PaymentTagihanID: tagihan.TagihanID,
		PaymentSewaID:    &fx.Sewa.SewaID,
		PaymentNominal:   tagihan.TagihanNominal,
		PaymentStatus:    paymentModel.PaymentStatusPending,
		PaymentGateway:   paymentModel.PaymentGatewayMidtrans,
	}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatalf("seed payment perpanjangan: %v", err)
	}

	selesaiSebelum := fx.Sewa.SewaSelesai

	if _, err := engine.Reconcile(context.Background(), payment.PaymentOrderCode, GatewayNotification{
		TransactionStatus: "settlement",
	}); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	var sewa sewaModel.RiwayatSewaModel
	db.First(&sewa, "riwayat_sewa_id = ?", fx.Sewa.SewaID)

	wantSelesai := selesaiSebelum.AddDate(0, 6, 0)
	if !sewa.SewaSelesai.Equal(wantSelesai) {
		t.Fatalf("sewa selesai = %s, want %s", sewa.SewaSelesai, wantSelesai)
	}
	if sewa.SewaDurasiBulan != 9 {
		t.Fatalf("durasi = %d, want 9", sewa.SewaDurasiBulan)
	}
	if sewa.SewaStatus != sewaModel.SewaStatusActive {
		t.Fatalf("sewa status = %s, want tetap ACTIVE", sewa.SewaStatus)
	}
}

func TestEngineReconcilePerpanjanganGagalTidakMenyentuhSewa(t *testing.T) {
	db := newTestDB(t)
	fx := seedBooking(t, db)
	engine := NewEngine(db, nil)

	tagihan := tagihanModel.TagihanModel{
		TagihanNomor:             helper.GenerateOrderCode(helper.CodePrefixTagihan),
		TagihanUserID:            fx.Sewa.SewaUserID,
		TagihanSewaID:            &fx.Sewa.SewaID,
		TagihanJenis:             tagihanModel.TagihanJenisPerpanjangan,
		TagihanNominal:           2_000_000,
		TagihanJatuhTempo:        time.Now().Add(24 * time.Hour),
		TagihanPerpanjanganBulan: 2,
		TagihanStatus:            tagihanModel.TagihanStatusUnpaid,
	}
	if err := db.Create(&tagihan).Error; err != nil {
		t.Fatalf("seed tagihan: %v", err)
	}
	payment := paymentModel.PaymentModel{
		PaymentOrderCode: helper.GenerateOrderCode(helper.CodePrefixPayment),
		PaymentUserID:    fx.Sewa.SewaUserID,
		PaymentTagihanID: tagihan.TagihanID,
		PaymentSewaID:    &fx.Sewa.SewaID,
		PaymentNominal:   tagihan.TagihanNominal,
		PaymentStatus:    paymentModel.PaymentStatusPending,
		PaymentGateway:   paymentModel.PaymentGatewayMidtrans,
	}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatalf("seed payment: %v", err)
	}

	if _, err := engine.Reconcile(context.Background(), payment.PaymentOrderCode, GatewayNotification{
		TransactionStatus: "expire",
	}); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	// Sewa berjalan tidak boleh ikut batal karena perpanjangannya gagal.
	var sewa sewaModel.RiwayatSewaModel
	db.First(&sewa, "riwayat_sewa_id = ?", fx.Sewa.SewaID)
	if sewa.SewaStatus != sewaModel.SewaStatusActive {
		t.Fatalf("sewa status = %s, want tetap ACTIVE", sewa.SewaStatus)
	}

	var kamar kamarModel.KamarModel
	db.First(&kamar, "kamar_id = ?", fx.Kamar.KamarID)
	if kamar.KamarStatus != kamarModel.KamarStatusOccupied {
		t.Fatalf("kamar status = %s, want tetap OCCUPIED", kamar.KamarStatus)
	}
}

func TestEngineReconcileIdempoten(t *testing.T) {
	db := newTestDB(t)
	fx := seedBooking(t, db)
	engine := NewEngine(db, nil)

	notif := GatewayNotification{TransactionStatus: "settlement"}
	if _, err := engine.Reconcile(context.Background(), fx.Payment.PaymentOrderCode, notif); err != nil {
		t.Fatalf("Reconcile pertama: %v", err)
	}

	// Webhook datang dua kali (retry Midtrans) → no-op, bukan error.
	out, err := engine.Reconcile(context.Background(), fx.Payment.PaymentOrderCode, notif)
	if err != nil {
		t.Fatalf("Reconcile kedua: %v", err)
	}
	if out.Applied {
		t.Fatal("reconcile kedua harusnya no-op")
	}

	// Bahkan status berlawanan pun tidak boleh menimpa terminal.
	out, err = engine.Reconcile(context.Background(), fx.Payment.PaymentOrderCode, GatewayNotification{
		TransactionStatus: "expire",
	})
	if err != nil {
		t.Fatalf("Reconcile ketiga: %v", err)
	}
	if out.Applied || out.Payment.PaymentStatus != paymentModel.PaymentStatusSuccess {
		t.Fatalf("payment tergeser dari SUCCESS: applied=%v status=%s", out.Applied, out.Payment.PaymentStatus)
	}
}

func TestEngineReconcileOrderTidakDikenal(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db, nil)

	_, err := engine.Reconcile(context.Background(), "PAY-TIDAKADA", GatewayNotification{
		TransactionStatus: "settlement",
	})
	var fe *fiber.Error
	if !errors.As(err, &fe) || fe.Code != fiber.StatusNotFound {
		t.Fatalf("want fiber 404, got %v", err)
	}
}

func TestEngineVerifyManual(t *testing.T) {
	db := newTestDB(t)
	fx := seedBooking(t, db)
	engine := NewEngine(db, nil)
	verifier := uuid.New()

	p, err := engine.VerifyManual(context.Background(), fx.Payment.PaymentID, verifier)
	if err != nil {
		t.Fatalf("VerifyManual: %v", err)
	}
	if p.PaymentStatus != paymentModel.PaymentStatusSuccess {
		t.Fatalf("status = %s, want SUCCESS", p.PaymentStatus)
	}
	if p.PaymentGateway != paymentModel.PaymentGatewayManual {
		t.Fatalf("gateway = %s, want manual", p.PaymentGateway)
	}
	if p.PaymentVerifiedBy == nil || *p.PaymentVerifiedBy != verifier {
		t.Fatal("verified_by harusnya terisi")
	}

	var tagihan tagihanModel.TagihanModel
	db.First(&tagihan, "tagihan_id = ?", fx.Tagihan.TagihanID)
	if tagihan.TagihanStatus != tagihanModel.TagihanStatusPaid {
		t.Fatalf("tagihan status = %s, want PAID", tagihan.TagihanStatus)
	}

	// Verifikasi kedua ditolak.
	if _, err := engine.VerifyManual(context.Background(), fx.Payment.PaymentID, verifier); err == nil {
		t.Fatal("verifikasi ulang harusnya error")
	}
}

func TestEngineCancel(t *testing.T) {
	db := newTestDB(t)
	fx := seedBooking(t, db)
	engine := NewEngine(db, nil)

	// Bukan pemilik, bukan owner → 403.
	_, err := engine.Cancel(context.Background(), fx.Payment.PaymentID, uuid.New(), false)
	var fe *fiber.Error
	if !errors.As(err, &fe) || fe.Code != fiber.StatusForbidden {
		t.Fatalf("want fiber 403, got %v", err)
	}

	// Pemilik boleh.
	p, err := engine.Cancel(context.Background(), fx.Payment.PaymentID, fx.Payment.PaymentUserID, false)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if p.PaymentStatus != paymentModel.PaymentStatusCancel {
		t.Fatalf("status = %s, want CANCEL", p.PaymentStatus)
	}

	var sewa sewaModel.RiwayatSewaModel
	db.First(&sewa, "riwayat_sewa_id = ?", fx.Sewa.SewaID)
	if sewa.SewaStatus != sewaModel.SewaStatusCancelled {
		t.Fatalf("sewa status = %s, want CANCELLED", sewa.SewaStatus)
	}

	// Sudah bukan PENDING → 400.
	_, err = engine.Cancel(context.Background(), fx.Payment.PaymentID, fx.Payment.PaymentUserID, true)
	if !errors.As(err, &fe) || fe.Code != fiber.StatusBadRequest {
		t.Fatalf("want fiber 400, got %v", err)
	}
}
