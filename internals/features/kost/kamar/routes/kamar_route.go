package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	controller "kostku_backend/internals/features/kost/kamar/controller"
)

// KamarRoutes: CRUD kamar untuk owner + listing publik.
func KamarRoutes(public fiber.Router, owner fiber.Router, db *gorm.DB, cache *redis.Client) {
	h := controller.NewKamarController(db, cache)

	public.Get("/kamar/available", h.ListAvailable)

	owner.Post("/kamar", h.Create)
	owner.Get("/kamar", h.List)
	owner.Get("/kamar/:id", h.GetByID)
	owner.Patch("/kamar/:id", h.Update)
	owner.Delete("/kamar/:id", h.Delete)
}
