package handler

import (
	"errors"
	"io"

	"resume-review/internal/delivery/http/dto"
	"resume-review/internal/delivery/http/middleware"
	"resume-review/internal/pkg/response"
	"resume-review/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const maxResumeSize = 10 << 20 // 10 MiB

// AdminHandler covers the ingestion surface: single uploads, bulk CSV import
// and the resume table export.
type AdminHandler struct {
	uc usecase.AdminUsecase
}

func NewAdminHandler(uc usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

func (h *AdminHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/resumes", h.Upload)
	r.Post("/resumes/bulk", h.BulkImport)
	r.Get("/resumes", h.List)
	r.Get("/resumes/export", h.Export)
}

func (h *AdminHandler) Upload(c fiber.Ctx) error {
	in := usecase.UploadInput{
		JobID:  c.FormValue("job_id"),
		Name:   c.FormValue("name"),
		Email:  c.FormValue("email"),
		PDFURL: c.FormValue("pdf_url"),
	}

	if fh, err := c.FormFile("file"); err == nil && fh != nil {
		if fh.Size > maxResumeSize {
			return middleware.NewAppError(fiber.StatusBadRequest, "File too large", nil, nil)
		}
		f, err := fh.Open()
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Unreadable file", nil, err)
		}
		data, err := io.ReadAll(io.LimitReader(f, maxResumeSize+1))
		_ = f.Close()
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Unreadable file", nil, err)
		}
		if int64(len(data)) > maxResumeSize {
			return middleware.NewAppError(fiber.StatusBadRequest, "File too large", nil, nil)
		}
		in.Filename = fh.Filename
		in.Data = data
	}

	p, err := h.uc.Upload(c.Context(), in)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "job_id, name, email and a resume file or URL are required", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to store resume", nil, err)
	}
	return response.Success(c, fiber.StatusCreated, "resume uploaded", dto.FromProfile(p))
}

func (h *AdminHandler) BulkImport(c fiber.Ctx) error {
	var req struct {
		JobID string `json:"job_id"`
		CSV   string `json:"csv"`
	}
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.uc.BulkImport(c.Context(), req.JobID, req.CSV)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "job_id and a CSV with name and email columns are required", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "Bulk import failed", nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *AdminHandler) List(c fiber.Ctx) error {
	rows, err := h.uc.ListResumes(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to list resumes", nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromProfiles(rows))
}

func (h *AdminHandler) Export(c fiber.Ctx) error {
	out, err := h.uc.ExportCSV(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to export resumes", nil, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="resumes.csv"`)
	return c.Send(out)
}
