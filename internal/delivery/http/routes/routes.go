package routes

import (
	"skill-tracker/internal/delivery/http/handler"
	v1 "skill-tracker/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

// Registry mounts the health check, the versioned API and the live feed.
type Registry struct {
	health *handler.HealthHandler
	v1     v1.Handlers
	ws     fiber.Handler
}

func NewRegistry(health *handler.HealthHandler, api v1.Handlers, ws fiber.Handler) *Registry {
	return &Registry{health: health, v1: api, ws: ws}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
	r.registerWS(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.v1)
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.ws != nil {
		app.Get("/ws/skills", r.ws)
	}
}
