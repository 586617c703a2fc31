package handler

import (
	"context"
	"time"

	"talent-hub/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// Pinger is anything the health check can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	cache   Pinger
	timeout time.Duration
	logger  logrus.FieldLogger
}

func NewHealthHandler(db, cache Pinger, logger logrus.FieldLogger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, timeout: 2 * time.Second, logger: logger}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

type healthStatus struct {
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

// Health reports 503 only when the database is down. The cache is optional;
// the service keeps working without it.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	out := healthStatus{Database: h.probe(ctx, "database", h.db), Cache: h.probe(ctx, "cache", h.cache)}
	if out.Database != "up" {
		return response.Error(c, fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, out)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *HealthHandler) probe(ctx context.Context, name string, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		if h.logger != nil {
			h.logger.WithError(err).WithField("dependency", name).Warn("health probe failed")
		}
		return "down"
	}
	return "up"
}
