package handlers

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/creatordash/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// Pinger is satisfied by every credential store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store Pinger
}

func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	resp := dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Store:     "ok",
	}

	if err := h.store.Ping(c.UserContext()); err != nil {
		resp.Status = "degraded"
		resp.Store = "unhealthy: " + err.Error()
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}

	return c.JSON(resp)
}
