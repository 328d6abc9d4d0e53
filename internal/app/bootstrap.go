package app

import (
	"fmt"
	"strings"

	"resume-review/internal/config"
	"resume-review/internal/delivery/http/middleware"
	"resume-review/internal/delivery/http/routes"
	v1 "resume-review/internal/delivery/http/routes/v1"
	"resume-review/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/static"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	container, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	app := New(container)
	return app, container.Close, nil
}

func registerGlobalMiddleware(f *fiber.App, c *Container) {
	accessLog := middleware.NewAccessLogMiddleware(c.Logger)
	errMw := middleware.NewErrorMiddleware(c.Logger)

	f.Use(accessLog.Middleware())
	f.Use(errMw.Middleware())
}

func registerRoutes(f *fiber.App, c *Container) {
	deps := v1.Deps{
		JWT:      c.JWT,
		Manager:  c.Manager,
		Auth:     c.Auth,
		Decision: c.Decision,
		Admin:    c.Admin,
	}
	routes.NewRegistry(c.DB, deps).Register(f)

	wsHandler := ws.NewHandler(c.Hub, c.Logger)
	f.Get("/ws", wsHandler.HandleReviewWS)

	// Uploaded resumes are served straight off disk.
	dir := strings.TrimSpace(c.Config.Storage.Dir)
	if dir == "" {
		dir = "data/files"
	}
	f.Get("/files/*", static.New(dir))
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
