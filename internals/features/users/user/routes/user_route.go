package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "kostku_backend/internals/features/users/user/controller"
	"kostku_backend/internals/middlewares"
)

// AuthRoutes: register/login publik (dengan limiter), me di group ber-JWT.
func AuthRoutes(public fiber.Router, private fiber.Router, db *gorm.DB, jwtSecret string) {
	h := controller.NewAuthController(db, jwtSecret)

	public.Post("/auth/register", middlewares.RegisterRateLimiter(), h.Register)
	public.Post("/auth/login", middlewares.LoginRateLimiter(), h.Login)

	private.Get("/me", h.Me)
}
