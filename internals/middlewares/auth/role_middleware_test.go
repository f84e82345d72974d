package auth

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"kostku_backend/internals/constants"
)

func newRoleApp(role string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if role != "" {
			c.Locals("role", role)
		}
		return c.Next()
	})
	app.Get("/o", RequireOwner("manajemen kost"), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestRequireOwner(t *testing.T) {
	t.Run("owner lolos", func(t *testing.T) {
		resp, err := newRoleApp(constants.RoleOwner).Test(httptest.NewRequest("GET", "/o", nil))
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
	})

	t.Run("penyewa ditolak dengan pesan fitur", func(t *testing.T) {
		resp, err := newRoleApp(constants.RolePenyewa).Test(httptest.NewRequest("GET", "/o", nil))
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		if resp.StatusCode != fiber.StatusForbidden {
			t.Fatalf("status = %d, want 403", resp.StatusCode)
		}
		body, _ := io.ReadAll(resp.Body)
		if !strings.Contains(string(body), "manajemen kost") {
			t.Fatalf("pesan 403 tidak menyebut fiturnya: %s", body)
		}
	})

	t.Run("tanpa role ditolak", func(t *testing.T) {
		resp, err := newRoleApp("").Test(httptest.NewRequest("GET", "/o", nil))
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		if resp.StatusCode != fiber.StatusForbidden {
			t.Fatalf("status = %d, want 403", resp.StatusCode)
		}
	})
}
