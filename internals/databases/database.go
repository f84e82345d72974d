package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"kostku_backend/internals/configs"
	kamarModel "kostku_backend/internals/features/kost/kamar/model"
	paymentModel "kostku_backend/internals/features/kost/payment/model"
	perbaikanModel "kostku_backend/internals/features/kost/perbaikan/model"
	sewaModel "kostku_backend/internals/features/kost/sewa/model"
	tagihanModel "kostku_backend/internals/features/kost/tagihan/model"
	userModel "kostku_backend/internals/features/users/user/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=kostku&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate menjalankan AutoMigrate semua model + index unik partial.
// Index partial menjamin maksimal satu sewa ACTIVE per kamar dan per user,
// jadi pengecekan read-then-check di CreateBooking tidak bisa balapan.
func Migrate() {
	if err := DB.AutoMigrate(
		&userModel.UserModel{},
		&kamarModel.KamarModel{},
		&sewaModel.RiwayatSewaModel{},
		&tagihanModel.TagihanModel{},
		&paymentModel.PaymentModel{},
		&perbaikanModel.PerbaikanModel{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate gagal: %v", err)
	}

	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_riwayat_sewa_active_kamar
			ON riwayat_sewa (riwayat_sewa_kamar_id)
			WHERE riwayat_sewa_status = 'ACTIVE' AND riwayat_sewa_deleted_at IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_riwayat_sewa_active_user
			ON riwayat_sewa (riwayat_sewa_user_id)
			WHERE riwayat_sewa_status = 'ACTIVE' AND riwayat_sewa_deleted_at IS NULL`,
	}
	for _, s := range stmts {
		if err := DB.Exec(s).Error; err != nil {
			log.Fatalf("❌ Gagal membuat index: %v", err)
		}
	}
	log.Println("✅ Migrasi selesai.")
}

func WarmUpQueries() {
	// jalankan ringan supaya koneksi/pool keisi & siap
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
