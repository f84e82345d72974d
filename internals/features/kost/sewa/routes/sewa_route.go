package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	controller "kostku_backend/internals/features/kost/sewa/controller"
)

func SewaRoutes(user fiber.Router, owner fiber.Router, db *gorm.DB, cache *redis.Client) {
	h := controller.NewSewaController(db, cache)

	user.Post("/sewa/booking", h.CreateBooking)
	user.Post("/sewa/perpanjangan", h.CreatePerpanjangan)
	user.Get("/sewa", h.ListMine)

	owner.Get("/sewa", h.List)
	owner.Get("/sewa/:id", h.GetByID)
	owner.Post("/sewa/:id/complete", h.Complete)
	owner.Post("/tagihan/generate-bulanan", h.GenerateMonthly)
}
