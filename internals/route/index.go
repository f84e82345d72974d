package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"kostku_backend/internals/configs"
	kamarRoutes "kostku_backend/internals/features/kost/kamar/routes"
	paymentRoutes "kostku_backend/internals/features/kost/payment/routes"
	paymentService "kostku_backend/internals/features/kost/payment/service"
	perbaikanRoutes "kostku_backend/internals/features/kost/perbaikan/routes"
	sewaRoutes "kostku_backend/internals/features/kost/sewa/routes"
	tagihanRoutes "kostku_backend/internals/features/kost/tagihan/routes"
	userRoutes "kostku_backend/internals/features/users/user/routes"
	authMiddleware "kostku_backend/internals/middlewares/auth"
)

// SetupRoutes memasang semua route dalam tiga group:
//
//	/api/public → tanpa auth (listing kamar, webhook Midtrans)
//	/api/u      → JWT (penyewa & owner)
//	/api/o      → JWT + role owner
func SetupRoutes(app *fiber.App, db *gorm.DB, cache *redis.Client, engine *paymentService.Engine) {
	// ===================== GROUPS =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	log.Println("[INFO] Setting up PRIVATE (user) group...")
	user := app.Group("/api/u",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
	)

	log.Println("[INFO] Setting up OWNER group (Auth + RoleCheck)...")
	owner := app.Group("/api/o",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
		authMiddleware.RequireOwner("manajemen kost"),
	)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting Auth routes...")
	userRoutes.AuthRoutes(public, user, db, configs.JWTSecret)

	log.Println("[INFO] Mounting Kamar routes...")
	kamarRoutes.KamarRoutes(public, owner, db, cache)

	log.Println("[INFO] Mounting Sewa routes...")
	sewaRoutes.SewaRoutes(user, owner, db, cache)

	log.Println("[INFO] Mounting Tagihan routes...")
	tagihanRoutes.TagihanRoutes(user, owner, db)

	log.Println("[INFO] Mounting Payment routes...")
	paymentRoutes.PaymentRoutes(public, user, owner, db, engine, configs.MidtransServerKey, configs.MidtransClientKey)

	log.Println("[INFO] Mounting Perbaikan routes...")
	perbaikanRoutes.PerbaikanRoutes(user, owner, db)
}
