package model

import "testing"

func strPtr(s string) *string { return &s }

func TestIsPerpanjangan(t *testing.T) {
	cases := []struct {
		name string
		row  TagihanModel
		want bool
	}{
		{"jenis terstruktur", TagihanModel{TagihanJenis: TagihanJenisPerpanjangan}, true},
		{"jenis sewa", TagihanModel{TagihanJenis: TagihanJenisSewa}, false},
		{"fallback keterangan", TagihanModel{
			TagihanJenis:      TagihanJenisLainnya,
			TagihanKeterangan: strPtr("Perpanjangan sewa kamar A1 untuk 3 bulan"),
		}, true},
		{"keterangan biasa", TagihanModel{
			TagihanJenis:      TagihanJenisLainnya,
			TagihanKeterangan: strPtr("Tagihan listrik bulan Juli"),
		}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.row.IsPerpanjangan(); got != tc.want {
				t.Errorf("IsPerpanjangan() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPerpanjanganBulan(t *testing.T) {
	cases := []struct {
		name string
		row  TagihanModel
		want int
	}{
		{"kolom terstruktur menang", TagihanModel{
			TagihanJenis:             TagihanJenisPerpanjangan,
			TagihanPerpanjanganBulan: 4,
			TagihanKeterangan:        strPtr("Perpanjangan untuk 9 bulan"),
		}, 4},
		{"fallback parse keterangan", TagihanModel{
			TagihanJenis:      TagihanJenisPerpanjangan,
			TagihanKeterangan: strPtr("Perpanjangan sewa untuk 6 bulan"),
		}, 6},
		{"case-insensitive", TagihanModel{
			TagihanJenis:      TagihanJenisPerpanjangan,
			TagihanKeterangan: strPtr("perpanjangan UNTUK 2 BULAN"),
		}, 2},
		{"bukan perpanjangan", TagihanModel{
			TagihanJenis:      TagihanJenisSewa,
			TagihanKeterangan: strPtr("Sewa kamar untuk 3 bulan"),
		}, 0},
		{"perpanjangan tanpa bulan", TagihanModel{
			TagihanJenis:      TagihanJenisPerpanjangan,
			TagihanKeterangan: strPtr("Perpanjangan sewa kamar"),
		}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.row.PerpanjanganBulan(); got != tc.want {
				t.Errorf("PerpanjanganBulan() = %d, want %d", got, tc.want)
			}
		})
	}
}
