package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	applog "github.com/safar/go-paper-store/internal/log"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	DB Pinger
}

// GET /healthz
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := h.DB.PingContext(ctx); err != nil {
		c.Status(fiber.StatusServiceUnavailable)
		applog.Error(c, "health.db", err, nil)
		return c.JSON(fiber.Map{"ok": false})
	}
	return c.JSON(fiber.Map{"ok": true})
}
