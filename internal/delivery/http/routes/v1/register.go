package v1

import (
	"resume-review/internal/delivery/http/handler"
	"resume-review/internal/delivery/http/middleware"
	"resume-review/internal/pkg/jwt"
	"resume-review/internal/review"
	"resume-review/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// Deps carries everything the v1 surface needs; the container wires it.
type Deps struct {
	JWT      jwt.Service
	Manager  *review.Manager
	Auth     usecase.AuthUsecase
	Decision usecase.DecisionUsecase
	Admin    usecase.AdminUsecase
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	authMw := middleware.NewAuthMiddleware(deps.JWT)

	authHandler := handler.NewAuthHandler(deps.Auth)
	sessionHandler := handler.NewSessionHandler(deps.Manager)
	profileHandler := handler.NewProfileHandler(deps.Manager, deps.Decision)
	adminHandler := handler.NewAdminHandler(deps.Admin)

	authGroup := r.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	protected := r.Group("", authMw.Middleware())

	sessionGroup := protected.Group("/session")
	sessionHandler.RegisterRoutes(sessionGroup)

	profilesGroup := protected.Group("/profiles")
	profileHandler.RegisterRoutes(profilesGroup)

	adminGroup := protected.Group("/admin", authMw.RequireAdmin())
	adminHandler.RegisterRoutes(adminGroup)
}
