package configs

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

// ConnectRedis menyiapkan client Redis untuk cache listing kamar.
// Kalau REDIS_ADDR tidak di-set, RDB tetap nil dan cache dinonaktifkan.
func ConnectRedis() {
	if RedisAddr == "" {
		return
	}

	RDB = redis.NewClient(&redis.Options{
		Addr:     RedisAddr,
		Password: GetEnv("REDIS_PASSWORD"),
	})

	if _, err := RDB.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Gagal konek Redis (%v), cache dinonaktifkan.", err)
		RDB = nil
		return
	}
	log.Println("✅ Redis terkoneksi.")
}
