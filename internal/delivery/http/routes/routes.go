package routes

import (
	"resume-review/internal/database"
	"resume-review/internal/delivery/http/handler"
	v1 "resume-review/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	deps   v1.Deps
}

func NewRegistry(db database.DB, deps v1.Deps) *Registry {
	return &Registry{health: handler.NewHealthHandler(db), deps: deps}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.deps)
}
