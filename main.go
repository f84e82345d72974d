package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"

	"kostku_backend/internals/configs"
	database "kostku_backend/internals/databases"
	paymentService "kostku_backend/internals/features/kost/payment/service"
	middlewares "kostku_backend/internals/middlewares"
	routes "kostku_backend/internals/route"
	seeds "kostku_backend/internals/seeds"
)

func main() {
	seed := flag.Bool("seed", false, "jalankan seeder lalu exit")
	flag.Parse()

	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"}, // sesuaikan dengan CIDR reverse proxy jika perlu
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	// 🔎 Request-ID + timing (observability ringan)
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		// Context ber-deadline tersedia via c.UserContext() bagi handler yang
		// membutuhkannya; query biasa sudah dibatasi statement_timeout di DB.
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		dur := time.Since(start)
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), dur)
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + migrasi + warm-up
	database.ConnectDB()
	database.TunePool()
	database.Migrate()
	database.WarmUpQueries()

	if *seed {
		seeds.RunAllSeeds(database.DB)
		log.Println("✅ Seeding selesai.")
		return
	}

	// 🔴 Redis (opsional — cache listing kamar)
	configs.ConnectRedis()

	// ✅ MIDTRANS
	paymentService.InitMidtrans(configs.MidtransServerKey, configs.MidtransUseProd)

	// 📣 Notifier pembayaran: AMQP kalau tersedia, fallback ke console
	var notifier paymentService.Notifier
	if configs.AMQPURL != "" {
		if n, err := paymentService.NewAMQPNotifier(configs.AMQPURL, "kostku.payments"); err != nil {
			log.Printf("[WARN] AMQP tidak tersedia, fallback console notifier: %v", err)
		} else {
			notifier = n
			defer n.Close()
		}
	}
	engine := paymentService.NewEngine(database.DB, notifier)

	// ❤️ Health check (anti-cold start)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	// ✅ Routes
	routes.SetupRoutes(app, database.DB, configs.RDB, engine)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
