package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "kostku_backend/internals/features/kost/payment/controller"
	svc "kostku_backend/internals/features/kost/payment/service"
)

func PaymentRoutes(public fiber.Router, user fiber.Router, owner fiber.Router, db *gorm.DB, engine *svc.Engine, midtransServerKey, midtransClientKey string) {
	h := controller.NewPaymentController(db, engine, midtransServerKey, midtransClientKey)

	// Webhook dari Midtrans — tanpa auth, diverifikasi lewat signature.
	public.Post("/payments/midtrans/webhook", h.MidtransWebhook)
	public.Get("/payments/config", h.Config)

	user.Post("/payments", h.CreatePayment)
	user.Get("/payments", h.ListMine)
	user.Get("/payments/sync/:order_code", h.SyncByOrderCode)
	user.Post("/payments/:id/cancel", h.CancelPayment)

	owner.Get("/payments", h.List)
	owner.Post("/payments/:id/verify", h.VerifyPayment)
}
