package routes

import (
	"talent-hub/internal/delivery/http/middleware"
	v1 "talent-hub/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	v1   v1.Handlers
	auth *middleware.AuthMiddleware
}

func NewRegistry(handlers v1.Handlers, auth *middleware.AuthMiddleware) *Registry {
	return &Registry{v1: handlers, auth: auth}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerAPI(app)
	app.Use(func(c fiber.Ctx) error {
		return middleware.NewAppError(fiber.StatusNotFound, "Route not found", nil, nil)
	})
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.v1, r.auth)
}
