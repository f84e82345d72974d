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
	sewaModel "kostku_backend/internals/features/kost/sewa/model"
	tagihanModel "kostku_backend/internals/features/kost/tagihan/model"
)

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
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func seedKamar(t *testing.T, db *gorm.DB, nomor string, harga int) kamarModel.KamarModel {
	t.Helper()
	k := kamarModel.KamarModel{
		KamarNomor:        nomor,
		KamarNama:         "Kamar " + nomor,
		KamarHargaBulanan: harga,
		KamarStatus:       kamarModel.KamarStatusAvailable,
	}
	if err := db.Create(&k).Error; err != nil {
		t.Fatalf("seed kamar: %v", err)
	}
	return k
}

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		t.Fatalf("bukan fiber error: %v", err)
	}
	return fe.Code
}

func TestCreateBooking(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	kamar := seedKamar(t, db, "A-01", 1_000_000)
	userID := uuid.New()

	res, err := svc.CreateBooking(context.Background(), userID, kamar.KamarID, 3)
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if res.Total != 3_000_000 {
		t.Fatalf("total = %d, want 3000000", res.Total)
	}
	if res.Sewa.SewaStatus != sewaModel.SewaStatusActive {
		t.Fatalf("sewa status = %s, want ACTIVE", res.Sewa.SewaStatus)
	}
	if res.Sewa.SewaHargaBulanan != 1_000_000 {
		t.Fatalf("snapshot harga = %d", res.Sewa.SewaHargaBulanan)
	}
	wantSelesai := res.Sewa.SewaMulai.AddDate(0, 3, 0)
	if !res.Sewa.SewaSelesai.Equal(wantSelesai) {
		t.Fatalf("selesai = %s, want %s", res.Sewa.SewaSelesai, wantSelesai)
	}

	if res.Tagihan.TagihanJenis != tagihanModel.TagihanJenisSewa {
		t.Fatalf("jenis tagihan = %s", res.Tagihan.TagihanJenis)
	}
	if res.Tagihan.TagihanNominal != 3_000_000 {
		t.Fatalf("nominal tagihan = %d", res.Tagihan.TagihanNominal)
	}
	if res.Tagihan.TagihanSewaID == nil || *res.Tagihan.TagihanSewaID != res.Sewa.SewaID {
		t.Fatal("tagihan harusnya terhubung ke sewa")
	}

	var k kamarModel.KamarModel
	db.First(&k, "kamar_id = ?", kamar.KamarID)
	if k.KamarStatus != kamarModel.KamarStatusOccupied {
		t.Fatalf("kamar status = %s, want OCCUPIED", k.KamarStatus)
	}
}

func TestCreateBookingValidasi(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	kamar := seedKamar(t, db, "A-01", 1_000_000)
	userID := uuid.New()

	t.Run("durasi di luar batas", func(t *testing.T) {
		for _, durasi := range []int{0, -1, 25} {
			_, err := svc.CreateBooking(context.Background(), userID, kamar.KamarID, durasi)
			if fiberCode(t, err) != fiber.StatusBadRequest {
				t.Fatalf("durasi %d: want 400, got %v", durasi, err)
			}
		}
	})

	t.Run("kamar tidak ditemukan", func(t *testing.T) {
		_, err := svc.CreateBooking(context.Background(), userID, uuid.New(), 3)
		if fiberCode(t, err) != fiber.StatusNotFound {
			t.Fatalf("want 404, got %v", err)
		}
	})

	t.Run("harga belum dikonfigurasi", func(t *testing.T) {
		gratis := seedKamar(t, db, "G-01", 0)
		_, err := svc.CreateBooking(context.Background(), userID, gratis.KamarID, 3)
		if fiberCode(t, err) != fiber.StatusConflict {
			t.Fatalf("want 409, got %v", err)
		}
	})

	t.Run("kamar tidak available", func(t *testing.T) {
		rusak := seedKamar(t, db, "R-01", 900_000)
		db.Model(&kamarModel.KamarModel{}).
			Where("kamar_id = ?", rusak.KamarID).
			Update("kamar_status", kamarModel.KamarStatusUnderRepair)
		_, err := svc.CreateBooking(context.Background(), userID, rusak.KamarID, 3)
		if fiberCode(t, err) != fiber.StatusConflict {
			t.Fatalf("want 409, got %v", err)
		}
	})
}

func TestCreateBookingKonflikSewaAktif(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	kamarA := seedKamar(t, db, "A-01", 1_000_000)
	kamarB := seedKamar(t, db, "B-01", 1_200_000)
	user1 := uuid.New()
	user2 := uuid.New()

	if _, err := svc.CreateBooking(context.Background(), user1, kamarA.KamarID, 3); err != nil {
		t.Fatalf("booking awal: %v", err)
	}

	// User yang sama tidak boleh booking kamar lain selagi sewanya aktif.
	_, err := svc.CreateBooking(context.Background(), user1, kamarB.KamarID, 3)
	if fiberCode(t, err) != fiber.StatusConflict {
		t.Fatalf("double booking user: want 409, got %v", err)
	}

	// Kamar yang sudah OCCUPIED ditolak untuk user lain.
	_, err = svc.CreateBooking(context.Background(), user2, kamarA.KamarID, 3)
	if fiberCode(t, err) != fiber.StatusConflict {
		t.Fatalf("booking kamar occupied: want 409, got %v", err)
	}
}

func TestCreatePerpanjangan(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	kamar := seedKamar(t, db, "A-01", 1_000_000)
	userID := uuid.New()

	res, err := svc.CreateBooking(context.Background(), userID, kamar.KamarID, 3)
	if err != nil {
		t.Fatalf("booking: %v", err)
	}

	tagihan, err := svc.CreatePerpanjangan(context.Background(), userID, 6)
	if err != nil {
		t.Fatalf("CreatePerpanjangan: %v", err)
	}
	if tagihan.TagihanJenis != tagihanModel.TagihanJenisPerpanjangan {
		t.Fatalf("jenis = %s", tagihan.TagihanJenis)
	}
	if tagihan.TagihanPerpanjanganBulan != 6 {
		t.Fatalf("bulan = %d, want 6", tagihan.TagihanPerpanjanganBulan)
	}
	if tagihan.TagihanNominal != 6_000_000 {
		t.Fatalf("nominal = %d, want 6000000", tagihan.TagihanNominal)
	}
	if tagihan.TagihanSewaID == nil || *tagihan.TagihanSewaID != res.Sewa.SewaID {
		t.Fatal("tagihan perpanjangan harusnya terhubung ke sewa aktif")
	}

	// Perpanjangan belum mengubah sewa — itu tugas rekonsiliasi pembayaran.
	var sewa sewaModel.RiwayatSewaModel
	db.First(&sewa, "riwayat_sewa_id = ?", res.Sewa.SewaID)
	if sewa.SewaDurasiBulan != 3 {
		t.Fatalf("durasi berubah jadi %d sebelum dibayar", sewa.SewaDurasiBulan)
	}

	// Tanpa sewa aktif → 404.
	_, err = svc.CreatePerpanjangan(context.Background(), uuid.New(), 3)
	if fiberCode(t, err) != fiber.StatusNotFound {
		t.Fatalf("want 404, got %v", err)
	}
}

func TestCompleteSewa(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	kamar := seedKamar(t, db, "A-01", 1_000_000)
	userID := uuid.New()

	res, err := svc.CreateBooking(context.Background(), userID, kamar.KamarID, 1)
	if err != nil {
		t.Fatalf("booking: %v", err)
	}

	sewa, err := svc.CompleteSewa(context.Background(), res.Sewa.SewaID)
	if err != nil {
		t.Fatalf("CompleteSewa: %v", err)
	}
	if sewa.SewaStatus != sewaModel.SewaStatusCompleted {
		t.Fatalf("status = %s, want COMPLETED", sewa.SewaStatus)
	}

	var k kamarModel.KamarModel
	db.First(&k, "kamar_id = ?", kamar.KamarID)
	if k.KamarStatus != kamarModel.KamarStatusAvailable {
		t.Fatalf("kamar status = %s, want AVAILABLE", k.KamarStatus)
	}

	// Sudah COMPLETED → 400.
	_, err = svc.CompleteSewa(context.Background(), res.Sewa.SewaID)
	if fiberCode(t, err) != fiber.StatusBadRequest {
		t.Fatalf("want 400, got %v", err)
	}
}

func TestGenerateMonthlyTagihan(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	kamar := seedKamar(t, db, "A-01", 1_000_000)
	userID := uuid.New()

	if _, err := svc.CreateBooking(context.Background(), userID, kamar.KamarID, 12); err != nil {
		t.Fatalf("booking: %v", err)
	}

	now := time.Date(2026, time.March, 15, 9, 0, 0, 0, time.UTC)

	res, err := svc.generateMonthlyTagihanAt(context.Background(), now)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Generated != 1 {
		t.Fatalf("generated = %d, want 1", res.Generated)
	}

	tagihan := res.Tagihan[0]
	if tagihan.TagihanJenis != tagihanModel.TagihanJenisBulanan {
		t.Fatalf("jenis = %s", tagihan.TagihanJenis)
	}
	if tagihan.TagihanNominal != 1_000_000 {
		t.Fatalf("nominal = %d", tagihan.TagihanNominal)
	}
	wantDue := time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC)
	if !tagihan.TagihanJatuhTempo.Equal(wantDue) {
		t.Fatalf("jatuh tempo = %s, want %s", tagihan.TagihanJatuhTempo, wantDue)
	}

	// Dipanggil lagi di bulan yang sama → idempoten.
	res, err = svc.generateMonthlyTagihanAt(context.Background(), now.AddDate(0, 0, 5))
	if err != nil {
		t.Fatalf("generate ulang: %v", err)
	}
	if res.Generated != 0 {
		t.Fatalf("generate ulang = %d, want 0", res.Generated)
	}

	// Bulan berikutnya boleh generate lagi.
	res, err = svc.generateMonthlyTagihanAt(context.Background(), now.AddDate(0, 1, 0))
	if err != nil {
		t.Fatalf("generate bulan berikut: %v", err)
	}
	if res.Generated != 1 {
		t.Fatalf("generate bulan berikut = %d, want 1", res.Generated)
	}
}
