package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"resume-review/internal/domain/profile"
	"resume-review/internal/sheet"
)

// PlaceholderResumeURL marks bulk-imported rows whose source row carried no
// resume link. The UI shows these as "no document".
const PlaceholderResumeURL = "about:blank"

// FileStore persists uploaded resume documents and returns a public URL for
// the stored file.
type FileStore interface {
	SavePDF(ctx context.Context, jobID, filename string, data []byte) (string, error)
}

type UploadInput struct {
	JobID    string
	Name     string
	Email    string
	PDFURL   string
	Filename string
	Data     []byte
}

type BulkResult struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
}

type AdminUsecase interface {
	Upload(ctx context.Context, in UploadInput) (profile.Profile, error)
	BulkImport(ctx context.Context, jobID, csv string) (BulkResult, error)
	ListResumes(ctx context.Context) ([]profile.Profile, error)
	ExportCSV(ctx context.Context) ([]byte, error)
}

type Admin struct {
	repo     profile.Repository
	files    FileStore
	notifier EventNotifier
	logger   *log.Logger
}

func NewAdminUsecase(repo profile.Repository, files FileStore, notifier EventNotifier, logger *log.Logger) *Admin {
	return &Admin{repo: repo, files: files, notifier: notifier, logger: logger}
}

// Upload stores a single resume: the document goes to the file store, the
// row to the hosted table with status New.
func (a *Admin) Upload(ctx context.Context, in UploadInput) (profile.Profile, error) {
	jobID := strings.TrimSpace(in.JobID)
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if jobID == "" || name == "" || email == "" {
		return profile.Profile{}, ErrInvalidInput
	}

	pdfURL := strings.TrimSpace(in.PDFURL)
	if len(in.Data) > 0 {
		if a.files == nil {
			return profile.Profile{}, ErrInternal
		}
		url, err := a.files.SavePDF(ctx, jobID, in.Filename, in.Data)
		if err != nil {
			return profile.Profile{}, fmt.Errorf("store resume file: %w", err)
		}
		pdfURL = url
	}
	if pdfURL == "" {
		return profile.Profile{}, ErrInvalidInput
	}

	p := profile.Profile{
		ID:     uuid.NewString(),
		JobID:  jobID,
		Name:   name,
		Email:  email,
		Status: profile.StatusNew,
		PDFURL: pdfURL,
	}
	if err := a.repo.Insert(ctx, p); err != nil {
		return profile.Profile{}, fmt.Errorf("insert profile: %w", err)
	}

	if a.notifier != nil {
		a.notifier.ProfilesImported(jobID, 1)
	}
	return p, nil
}

// BulkImport ingests a pasted CSV for one job. The header row is mapped by
// substring so `name,email,pdf_url`, `Full Name,E-mail,Resume` and similar
// variants all work. Malformed rows are counted as failed and processing
// continues; partial success is the normal outcome.
func (a *Admin) BulkImport(ctx context.Context, jobID, csv string) (BulkResult, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" || strings.TrimSpace(csv) == "" {
		return BulkResult{}, ErrInvalidInput
	}

	lines := strings.Split(strings.ReplaceAll(csv, "\r\n", "\n"), "\n")

	header := -1
	var cols bulkColumns
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cols = mapBulkColumns(sheet.ParseLine(line))
		header = i
		break
	}
	if header < 0 || cols.name < 0 || cols.email < 0 {
		return BulkResult{}, ErrInvalidInput
	}

	var res BulkResult
	for _, line := range lines[header+1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := sheet.ParseLine(line)

		name := strings.TrimSpace(sheet.Unquote(fieldAt(fields, cols.name)))
		email := strings.TrimSpace(sheet.Unquote(fieldAt(fields, cols.email)))
		if name == "" || email == "" {
			res.Failed++
			continue
		}

		pdfURL := strings.TrimSpace(sheet.Unquote(fieldAt(fields, cols.pdfURL)))
		if pdfURL == "" {
			pdfURL = PlaceholderResumeURL
		}

		p := profile.Profile{
			ID:     uuid.NewString(),
			JobID:  jobID,
			Name:   name,
			Email:  email,
			Status: profile.StatusNew,
			PDFURL: pdfURL,
		}
		if err := a.repo.Insert(ctx, p); err != nil {
			if a.logger != nil {
				a.logger.Printf("[Admin] bulk insert failed job=%s email=%s err=%v", jobID, email, err)
			}
			res.Failed++
			continue
		}
		res.Success++
	}

	if res.Success > 0 && a.notifier != nil {
		a.notifier.ProfilesImported(jobID, res.Success)
	}
	return res, nil
}

func (a *Admin) ListResumes(ctx context.Context) ([]profile.Profile, error) {
	rows, err := a.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	return rows, nil
}

// ExportCSV renders every row under a fixed header. Name and URL are always
// quoted since they are the fields that carry commas in practice.
func (a *Admin) ExportCSV(ctx context.Context) ([]byte, error) {
	rows, err := a.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("export resumes: %w", err)
	}

	var b strings.Builder
	b.WriteString("Job ID,Name,Email,Status,Resume URL\n")
	for _, p := range rows {
		b.WriteString(p.JobID)
		b.WriteByte(',')
		b.WriteString(quoteField(p.Name))
		b.WriteByte(',')
		b.WriteString(p.Email)
		b.WriteByte(',')
		b.WriteString(string(p.Status))
		b.WriteByte(',')
		b.WriteString(quoteField(p.PDFURL))
		b.WriteByte('\n')
	}
	return []byte(b.String()), nil
}

type bulkColumns struct {
	name, email, pdfURL int
}

// mapBulkColumns resolves column positions from header cell names. The
// resume-link column answers to pdf, url or resume.
func mapBulkColumns(fields []string) bulkColumns {
	cols := bulkColumns{name: -1, email: -1, pdfURL: -1}
	for i, f := range fields {
		h := strings.ToLower(strings.TrimSpace(sheet.Unquote(f)))
		switch {
		case cols.email < 0 && strings.Contains(h, "email"):
			cols.email = i
		case cols.name < 0 && strings.Contains(h, "name"):
			cols.name = i
		case cols.pdfURL < 0 && (strings.Contains(h, "pdf") || strings.Contains(h, "url") || strings.Contains(h, "resume")):
			cols.pdfURL = i
		}
	}
	return cols
}

func fieldAt(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return fields[i]
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
