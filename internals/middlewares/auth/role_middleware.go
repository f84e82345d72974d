package auth

import (
	"github.com/gofiber/fiber/v2"

	"kostku_backend/internals/constants"
)

// RequireOwner menolak request yang rolenya bukan owner. Dipasang setelah
// AuthJWT; feature dipakai di pesan 403 supaya jelas fitur mana yang diblok.
func RequireOwner(feature string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if role != constants.RoleOwner {
			return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorOwner(feature))
		}
		return c.Next()
	}
}
