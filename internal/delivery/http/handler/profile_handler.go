package handler

import (
	"errors"
	"strings"

	"resume-review/internal/delivery/http/dto"
	"resume-review/internal/delivery/http/middleware"
	"resume-review/internal/domain/profile"
	"resume-review/internal/pkg/response"
	"resume-review/internal/review"
	"resume-review/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// ProfileHandler serves the review flow: fetching a job's candidates, paging
// through them and recording decisions.
type ProfileHandler struct {
	manager *review.Manager
	decider usecase.DecisionUsecase
}

func NewProfileHandler(manager *review.Manager, decider usecase.DecisionUsecase) *ProfileHandler {
	return &ProfileHandler{manager: manager, decider: decider}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/current", h.Current)
	r.Post("/next", h.Next)
	r.Post("/previous", h.Previous)
	r.Post("/:id/decision", h.Decide)
}

// List fetches the active job's candidates, populating the hosted table from
// the spreadsheet on first access.
func (h *ProfileHandler) List(c fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return err
	}

	if _, err := sess.FetchProfiles(c.Context()); err != nil {
		if errors.Is(err, review.ErrNoJob) {
			return middleware.NewAppError(fiber.StatusBadRequest, "No active job selected", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to fetch profiles", nil, err)
	}

	data := dto.ProfileListResponse{
		Profiles: dto.FromProfiles(sess.FilteredProfiles()),
		Stats:    sess.Stats(),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *ProfileHandler) Current(c fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return err
	}

	view, ok := sess.Current()
	if !ok {
		return middleware.NewAppError(fiber.StatusNotFound, "No profiles in the current view", nil, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromCurrentView(view))
}

func (h *ProfileHandler) Next(c fiber.Ctx) error {
	return h.move(c, func(s *review.Session) bool { return s.Advance() })
}

func (h *ProfileHandler) Previous(c fiber.Ctx) error {
	return h.move(c, func(s *review.Session) bool { return s.Retreat() })
}

func (h *ProfileHandler) move(c fiber.Ctx, step func(*review.Session) bool) error {
	sess, err := h.session(c)
	if err != nil {
		return err
	}

	step(sess)
	view, ok := sess.Current()
	if !ok {
		return middleware.NewAppError(fiber.StatusNotFound, "No profiles in the current view", nil, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromCurrentView(view))
}

func (h *ProfileHandler) Decide(c fiber.Ctx) error {
	var req struct {
		Decision string `json:"decision"`
	}
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var status profile.Status
	switch strings.ToLower(strings.TrimSpace(req.Decision)) {
	case "shortlist", "shortlisted":
		status = profile.StatusShortlisted
	case "reject", "rejected":
		status = profile.StatusRejected
	default:
		return middleware.NewAppError(fiber.StatusBadRequest, "Decision must be shortlist or reject", nil, nil)
	}

	sess, err := h.session(c)
	if err != nil {
		return err
	}

	res, err := h.decider.Decide(c.Context(), sess, c.Params("id"), status)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid decision request", nil, err)
		case errors.Is(err, usecase.ErrNotFound):
			return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to apply decision", nil, err)
	}

	data := dto.DecisionResponse{
		Profile:     dto.FromProfile(res.Profile),
		DownloadURL: res.DownloadURL,
		Exhausted:   res.Next.Exhausted,
	}
	if res.Next.Profile != nil {
		next := dto.FromProfile(*res.Next.Profile)
		data.Next = &next
		data.NextCategory = string(res.Next.Category)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *ProfileHandler) session(c fiber.Ctx) (*review.Session, error) {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return h.manager.Session(c.Context(), userID), nil
}
