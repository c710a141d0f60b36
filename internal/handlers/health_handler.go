package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/rsh/tracker-backend/internal/database"
	"github.com/rsh/tracker-backend/internal/dto"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check handles GET /health. The body is a fixed contract; database trouble
// is logged rather than surfaced here.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	if err := database.Ping(); err != nil {
		slog.Error("health check: database unreachable", "error", err)
	}
	return c.JSON(dto.HealthResponse{Status: "healthy"})
}
