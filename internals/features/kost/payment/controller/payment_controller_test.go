package controller

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestPaymentConfig(t *testing.T) {
	h := NewPaymentController(nil, nil, "SB-Mid-server-rahasia", "SB-Mid-client-abc123")

	app := fiber.New()
	app.Get("/payments/config", h.Config)

	resp, err := app.Test(httptest.NewRequest("GET", "/payments/config", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "SB-Mid-client-abc123") {
		t.Fatalf("client key tidak ada di response: %s", body)
	}
	// Server key tidak boleh bocor ke endpoint publik.
	if strings.Contains(string(body), "SB-Mid-server-rahasia") {
		t.Fatalf("server key bocor ke response: %s", body)
	}
}
