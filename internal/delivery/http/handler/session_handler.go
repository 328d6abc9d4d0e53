package handler

import (
	"strings"

	"resume-review/internal/delivery/http/dto"
	"resume-review/internal/delivery/http/middleware"
	"resume-review/internal/pkg/response"
	"resume-review/internal/review"

	"github.com/gofiber/fiber/v3"
)

// SessionHandler exposes the reviewer's session: active job, category filter
// and summary stats.
type SessionHandler struct {
	manager *review.Manager
}

func NewSessionHandler(manager *review.Manager) *SessionHandler {
	return &SessionHandler{manager: manager}
}

func (h *SessionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.Get)
	r.Put("/job", h.SetJob)
	r.Put("/category", h.SetCategory)
	r.Post("/logout", h.Logout)
}

func (h *SessionHandler) Get(c fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromSnapshot(sess.Snapshot()))
}

func (h *SessionHandler) SetJob(c fiber.Ctx) error {
	var req struct {
		JobID string `json:"job_id"`
	}
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	jobID := strings.TrimSpace(req.JobID)
	if jobID == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "job_id is required", nil, nil)
	}

	sess, err := h.session(c)
	if err != nil {
		return err
	}
	sess.SetJob(c.Context(), jobID)
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromSnapshot(sess.Snapshot()))
}

func (h *SessionHandler) SetCategory(c fiber.Ctx) error {
	var req struct {
		Category string `json:"category"`
	}
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	category, ok := review.ParseCategory(strings.ToLower(strings.TrimSpace(req.Category)))
	if !ok {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unknown category", nil, nil)
	}

	sess, err := h.session(c)
	if err != nil {
		return err
	}
	sess.SetCategory(category)
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromSnapshot(sess.Snapshot()))
}

func (h *SessionHandler) Logout(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	h.manager.EndSession(c.Context(), userID)
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *SessionHandler) session(c fiber.Ctx) (*review.Session, error) {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return h.manager.Session(c.Context(), userID), nil
}
