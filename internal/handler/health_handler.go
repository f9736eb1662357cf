package handler

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

const readinessTimeout = 2 * time.Second

type HealthHandler struct {
	db    *sqlx.DB
	redis *redis.Client
}

func NewHealthHandler(db *sqlx.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		db:    db,
		redis: redisClient,
	}
}

// Health returns basic health status
// GET /health
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "ok",
		"service": "boardinghouse-api",
	})
}

// Ready pings the database and the session cache and reports per-dependency
// status; any failing check degrades the endpoint to 503.
// GET /ready
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), readinessTimeout)
	defer cancel()

	status := "ready"
	code := fiber.StatusOK
	checks := fiber.Map{
		"database": "ok",
		"cache":    "ok",
	}

	if err := h.db.PingContext(ctx); err != nil {
		log.Printf("Readiness check failed for database: %v", err)
		checks["database"] = "unavailable"
		status = "degraded"
		code = fiber.StatusServiceUnavailable
	}

	if err := h.redis.Ping(ctx).Err(); err != nil {
		log.Printf("Readiness check failed for cache: %v", err)
		checks["cache"] = "unavailable"
		status = "degraded"
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"checks": checks,
	})
}
