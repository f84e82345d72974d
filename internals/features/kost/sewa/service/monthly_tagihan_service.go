package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	kamarModel "kostku_backend/internals/features/kost/kamar/model"
	sewaModel "kostku_backend/internals/features/kost/sewa/model"
	tagihanModel "kostku_backend/internals/features/kost/tagihan/model"
	helper "kostku_backend/internals/helpers"
)

type MonthlyResult struct {
	Generated int                         `json:"generated"`
	Tagihan   []tagihanModel.TagihanModel `json:"tagihan"`
}

// GenerateMonthlyTagihan membuat tagihan bulanan untuk semua sewa ACTIVE.
// Idempoten per sewa per bulan kalender: sewa yang sudah punya tagihan
// bulanan untuk due date bulan ini dilewati. Jatuh tempo tanggal 10 bulan
// berikutnya; nominal pakai snapshot harga sewa, fallback harga kamar.
// Dipanggil on-demand oleh owner, bukan scheduler.
func (s *BookingService) GenerateMonthlyTagihan(ctx context.Context) (*MonthlyResult, error) {
	now := time.Now()
	return s.generateMonthlyTagihanAt(ctx, now)
}

func (s *BookingService) generateMonthlyTagihanAt(ctx context.Context, now time.Time) (*MonthlyResult, error) {
	var activeRows []sewaModel.RiwayatSewaModel
	if err := s.DB.WithContext(ctx).
		Where("riwayat_sewa_status = ?", sewaModel.SewaStatusActive).
		Find(&activeRows).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	dueDate := time.Date(now.Year(), now.Month()+1, 10, 0, 0, 0, 0, now.Location())

	out := &MonthlyResult{Tagihan: []tagihanModel.TagihanModel{}}
	for i := range activeRows {
		sewa := &activeRows[i]

		// Idempoten per bulan: due date deterministik (tanggal 10 bulan
		// berikutnya), jadi run ulang di bulan yang sama menghitung due date
		// yang sama dan menemukan tagihannya sudah ada.
		var n int64
		if err := s.DB.WithContext(ctx).Model(&tagihanModel.TagihanModel{}).
			Where("tagihan_sewa_id = ? AND tagihan_jenis = ?", sewa.SewaID, tagihanModel.TagihanJenisBulanan).
			Where("tagihan_jatuh_tempo = ?", dueDate).
			Count(&n).Error; err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if n > 0 {
			continue
		}

		nominal := sewa.SewaHargaBulanan
		if nominal <= 0 {
			var kamar kamarModel.KamarModel
			if err := s.DB.WithContext(ctx).First(&kamar, "kamar_id = ?", sewa.SewaKamarID).Error; err == nil {
				nominal = kamar.KamarHargaBulanan
			}
		}
		if nominal <= 0 {
			log.Printf("[WARN] sewa %s dilewati: harga bulanan belum dikonfigurasi", sewa.SewaNomor)
			continue
		}

		ket := fmt.Sprintf("Sewa bulanan %s %d", now.Month().String(), now.Year())
		tagihan := tagihanModel.TagihanModel{
			TagihanNomor:      helper.GenerateOrderCode(helper.CodePrefixTagihan),
			TagihanUserID:     sewa.SewaUserID,
			TagihanSewaID:     &sewa.SewaID,
			TagihanJenis:      tagihanModel.TagihanJenisBulanan,
			TagihanNominal:    nominal,
			TagihanJatuhTempo: dueDate,
			TagihanKeterangan: &ket,
			TagihanStatus:     tagihanModel.TagihanStatusUnpaid,
		}
		if err := s.DB.WithContext(ctx).Create(&tagihan).Error; err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal generate tagihan bulanan: "+err.Error())
		}
		out.Tagihan = append(out.Tagihan, tagihan)
	}

	out.Generated = len(out.Tagihan)
	return out, nil
}
