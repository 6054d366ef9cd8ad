package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-kit/ticketing/internal/observability"
	"github.com/helpdesk-kit/ticketing/internal/persistence"
)

// HealthHandler exposes liveness and readiness probes.
type HealthHandler struct {
	postgres *persistence.Postgres
	redis    *persistence.Redis
	metrics  *observability.Metrics
	started  time.Time
}

// NewHealthHandler constructs handler.
func NewHealthHandler(postgres *persistence.Postgres, redis *persistence.Redis, metrics *observability.Metrics) *HealthHandler {
	return &HealthHandler{postgres: postgres, redis: redis, metrics: metrics, started: time.Now()}
}

// Live GET /health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"uptime": time.Since(h.started).String(),
	})
}

// Ready GET /health/ready. Checks both backing stores.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	checks := fiber.Map{}
	healthy := true

	if err := h.postgres.Ping(c.Context()); err != nil {
		checks["postgres"] = err.Error()
		healthy = false
	} else {
		checks["postgres"] = "ok"
	}

	if err := h.redis.Ping(c.Context()); err != nil {
		checks["redis"] = err.Error()
		healthy = false
	} else {
		checks["redis"] = "ok"
	}

	status := "ok"
	code := http.StatusOK
	if !healthy {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{"status": status, "checks": checks})
}

// Metrics GET /health/metrics. Returns in-process counters.
func (h *HealthHandler) Metrics(c *fiber.Ctx) error {
	requests, errCounts := h.metrics.Snapshot()
	return c.JSON(fiber.Map{"data": fiber.Map{
		"requests": requests,
		"errors":   errCounts,
	}})
}
