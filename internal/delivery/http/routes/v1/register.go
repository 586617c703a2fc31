package v1

import (
	"talent-hub/internal/delivery/http/handler"
	"talent-hub/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Health       *handler.HealthHandler
	Jobs         *handler.JobHandler
	Applications *handler.ApplicationHandler
	Exports      *handler.ExportHandler
	Profiles     *handler.ProfileHandler
	Drafts       *handler.DraftHandler
	Resumes      *handler.ResumeHandler
}

// Register mounts the v1 API. Everything except the health check needs a
// bearer token.
func Register(r fiber.Router, h Handlers, auth *middleware.AuthMiddleware) {
	if r == nil {
		return
	}

	if h.Health != nil {
		h.Health.RegisterRoutes(r)
	}

	protected := r.Group("", auth.Middleware())

	if h.Jobs != nil {
		h.Jobs.RegisterRoutes(protected)
	}
	if h.Exports != nil {
		h.Exports.RegisterRoutes(protected)
	}
	if h.Applications != nil {
		h.Applications.RegisterRoutes(protected)
	}
	if h.Profiles != nil {
		h.Profiles.RegisterRoutes(protected)
	}
	if h.Drafts != nil {
		h.Drafts.RegisterRoutes(protected)
	}
	if h.Resumes != nil {
		h.Resumes.RegisterRoutes(protected)
	}
}
