package handlers

import (
	"context"
	"time"

	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

const healthTimeout = 2 * time.Second

// HealthHandler reports service and database liveness.
type HealthHandler struct {
	service *services.ProductService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(service *services.ProductService) *HealthHandler {
	return &HealthHandler{service: service}
}

// RegisterRoutes registers GET /health.
func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
}

// HandleHealth answers 200 when the store is reachable and 503 otherwise.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()

	status, database, code := "healthy", "up", fiber.StatusOK
	if err := h.service.Healthy(ctx); err != nil {
		status, database, code = "unhealthy", "down", fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"status":   status,
		"time":     time.Now().Format(time.RFC3339),
		"database": database,
	})
}
