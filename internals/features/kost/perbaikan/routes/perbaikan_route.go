package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "kostku_backend/internals/features/kost/perbaikan/controller"
)

func PerbaikanRoutes(user fiber.Router, owner fiber.Router, db *gorm.DB) {
	h := controller.NewPerbaikanController(db)

	user.Post("/perbaikan", h.Create)
	user.Get("/perbaikan", h.ListMine)

	owner.Get("/perbaikan", h.List)
	owner.Patch("/perbaikan/:id/status", h.UpdateStatus)
}
