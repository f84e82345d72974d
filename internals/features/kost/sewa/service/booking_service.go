package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	kamarModel "kostku_backend/internals/features/kost/kamar/model"
	sewaModel "kostku_backend/internals/features/kost/sewa/model"
	tagihanModel "kostku_backend/internals/features/kost/tagihan/model"
	helper "kostku_backend/internals/helpers"
)

const (
	BookingDurasiMin = 1
	BookingDurasiMax = 24

	// Tagihan booking awal jatuh tempo 24 jam setelah dibuat.
	bookingDueWindow = 24 * time.Hour
)

type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

type BookingResult struct {
	Sewa    *sewaModel.RiwayatSewaModel  `json:"sewa"`
	Tagihan *tagihanModel.TagihanModel   `json:"tagihan"`
	Kamar   *kamarModel.KamarModel       `json:"kamar"`
	Total   int                          `json:"total"`
}

// CreateBooking: penyewa booking kamar untuk durasi bulan tertentu.
// Satu transaksi: sewa langsung ACTIVE + kamar OCCUPIED + tagihan sewa
// jatuh tempo 24 jam. Model reserve-then-pay: kamar terblokir sebelum bayar;
// rekonsiliasi pembayaran gagal/expired yang membatalkannya lagi.
func (s *BookingService) CreateBooking(ctx context.Context, userID, kamarID uuid.UUID, durasiBulan int) (*BookingResult, error) {
	if durasiBulan < BookingDurasiMin || durasiBulan > BookingDurasiMax {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Durasi sewa harus %d-%d bulan", BookingDurasiMin, BookingDurasiMax))
	}

	var kamar kamarModel.KamarModel
	if err := s.DB.WithContext(ctx).First(&kamar, "kamar_id = ?", kamarID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "Kamar tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if !kamar.IsAvailable() {
		return nil, fiber.NewError(fiber.StatusConflict, "Kamar sedang tidak tersedia")
	}
	if kamar.KamarHargaBulanan <= 0 {
		return nil, fiber.NewError(fiber.StatusConflict, "Harga kamar belum dikonfigurasi")
	}

	// Read-then-check; index unik partial di DB menutup celah balapannya.
	var activeUser int64
	if err := s.DB.WithContext(ctx).Model(&sewaModel.RiwayatSewaModel{}).
		Where("riwayat_sewa_user_id = ? AND riwayat_sewa_status = ?", userID, sewaModel.SewaStatusActive).
		Count(&activeUser).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if activeUser > 0 {
		return nil, fiber.NewError(fiber.StatusConflict, "Anda masih punya sewa aktif")
	}

	var activeKamar int64
	if err := s.DB.WithContext(ctx).Model(&sewaModel.RiwayatSewaModel{}).
		Where("riwayat_sewa_kamar_id = ? AND riwayat_sewa_status = ?", kamarID, sewaModel.SewaStatusActive).
		Count(&activeKamar).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if activeKamar > 0 {
		return nil, fiber.NewError(fiber.StatusConflict, "Kamar sudah punya sewa aktif")
	}

	now := time.Now()
	total := kamar.KamarHargaBulanan * durasiBulan

	sewa := &sewaModel.RiwayatSewaModel{
		SewaNomor:        helper.GenerateOrderCode(helper.CodePrefixSewa),
		SewaUserID:       userID,
		SewaKamarID:      kamarID,
		SewaMulai:        now,
		SewaSelesai:      now.AddDate(0, durasiBulan, 0),
		SewaHargaBulanan: kamar.KamarHargaBulanan,
		SewaDurasiBulan:  durasiBulan,
		SewaStatus:       sewaModel.SewaStatusActive,
	}

	ket := fmt.Sprintf("Sewa kamar %s untuk %d bulan", kamar.KamarNomor, durasiBulan)
	tagihan := &tagihanModel.TagihanModel{
		TagihanNomor:      helper.GenerateOrderCode(helper.CodePrefixTagihan),
		TagihanUserID:     userID,
		TagihanJenis:      tagihanModel.TagihanJenisSewa,
		TagihanNominal:    total,
		TagihanJatuhTempo: now.Add(bookingDueWindow),
		TagihanKeterangan: &ket,
		TagihanStatus:     tagihanModel.TagihanStatusUnpaid,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sewa).Error; err != nil {
			return err
		}
		if err := tx.Model(&kamarModel.KamarModel{}).
			Where("kamar_id = ?", kamarID).
			Update("kamar_status", kamarModel.KamarStatusOccupied).Error; err != nil {
			return err
		}
		tagihan.TagihanSewaID = &sewa.SewaID
		return tx.Create(tagihan).Error
	})
	if err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return nil, fiber.NewError(fiber.StatusConflict, "Kamar atau user sudah punya sewa aktif")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat booking")
	}

	kamar.KamarStatus = kamarModel.KamarStatusOccupied
	return &BookingResult{
		Sewa:    sewa,
		Tagihan: tagihan,
		Kamar:   &kamar,
		Total:   total,
	}, nil
}

// CreatePerpanjangan: penyewa minta perpanjangan sewa aktifnya → tagihan
// jenis perpanjangan dengan jumlah bulan terstruktur. Sewa baru diperpanjang
// oleh engine rekonsiliasi saat pembayarannya SUCCESS.
func (s *BookingService) CreatePerpanjangan(ctx context.Context, userID uuid.UUID, bulan int) (*tagihanModel.TagihanModel, error) {
	if bulan < BookingDurasiMin || bulan > BookingDurasiMax {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Durasi perpanjangan harus %d-%d bulan", BookingDurasiMin, BookingDurasiMax))
	}

	var sewa sewaModel.RiwayatSewaModel
	if err := s.DB.WithContext(ctx).
		First(&sewa, "riwayat_sewa_user_id = ? AND riwayat_sewa_status = ?", userID, sewaModel.SewaStatusActive).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "Anda tidak punya sewa aktif")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	harga := sewa.SewaHargaBulanan
	if harga <= 0 {
		var kamar kamarModel.KamarModel
		if err := s.DB.WithContext(ctx).First(&kamar, "kamar_id = ?", sewa.SewaKamarID).Error; err == nil {
			harga = kamar.KamarHargaBulanan
		}
	}
	if harga <= 0 {
		return nil, fiber.NewError(fiber.StatusConflict, "Harga sewa belum dikonfigurasi")
	}

	now := time.Now()
	ket := fmt.Sprintf("Perpanjangan sewa untuk %d bulan", bulan)
	tagihan := &tagihanModel.TagihanModel{
		TagihanNomor:             helper.GenerateOrderCode(helper.CodePrefixTagihan),
		TagihanUserID:            userID,
		TagihanSewaID:            &sewa.SewaID,
		TagihanJenis:             tagihanModel.TagihanJenisPerpanjangan,
		TagihanNominal:           harga * bulan,
		TagihanJatuhTempo:        now.Add(bookingDueWindow),
		TagihanKeterangan:        &ket,
		TagihanPerpanjanganBulan: bulan,
		TagihanStatus:            tagihanModel.TagihanStatusUnpaid,
	}
	if err := s.DB.WithContext(ctx).Create(tagihan).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat tagihan perpanjangan")
	}
	return tagihan, nil
}

// CompleteSewa: owner menutup sewa yang sudah habis masa → COMPLETED,
// kamar kembali AVAILABLE.
func (s *BookingService) CompleteSewa(ctx context.Context, sewaID uuid.UUID) (*sewaModel.RiwayatSewaModel, error) {
	var sewa sewaModel.RiwayatSewaModel
	if err := s.DB.WithContext(ctx).First(&sewa, "riwayat_sewa_id = ?", sewaID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "Sewa tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if sewa.SewaStatus != sewaModel.SewaStatusActive {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Hanya sewa ACTIVE yang bisa diselesaikan")
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&sewaModel.RiwayatSewaModel{}).
			Where("riwayat_sewa_id = ?", sewa.SewaID).
			Update("riwayat_sewa_status", sewaModel.SewaStatusCompleted).Error; err != nil {
			return err
		}
		return tx.Model(&kamarModel.KamarModel{}).
			Where("kamar_id = ?", sewa.SewaKamarID).
			Update("kamar_status", kamarModel.KamarStatusAvailable).Error
	})
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menyelesaikan sewa")
	}

	sewa.SewaStatus = sewaModel.SewaStatusCompleted
	return &sewa, nil
}
