package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/liketelecom/fieldservice/internal/core/ports"
	"github.com/liketelecom/fieldservice/internal/infrastructure/store"
)

// HealthHandler handles GET /health, the liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// ReadinessHandler handles GET /health/ready, the readiness probe.
// Verifies the snapshot byte store answers within a short deadline.
type ReadinessHandler struct {
	store ports.ByteStore
}

func NewReadinessHandler(bs ports.ByteStore) *ReadinessHandler {
	return &ReadinessHandler{store: bs}
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if _, _, err := h.store.Get(ctx, store.SnapshotKey); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"store":  err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
	})
}
