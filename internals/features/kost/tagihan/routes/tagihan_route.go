package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "kostku_backend/internals/features/kost/tagihan/controller"
)

func TagihanRoutes(user fiber.Router, owner fiber.Router, db *gorm.DB) {
	h := controller.NewTagihanController(db)

	user.Get("/tagihan", h.ListMine)
	user.Get("/tagihan/:id", h.GetMineByID)

	owner.Post("/tagihan", h.Create)
	owner.Get("/tagihan", h.List)
	owner.Get("/tagihan/:id", h.GetByID)
	owner.Patch("/tagihan/:id", h.Update)
	owner.Delete("/tagihan/:id", h.Delete)
}
