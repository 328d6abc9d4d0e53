package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"resume-review/internal/config"
	"resume-review/internal/usecase"
)

// Disk stores uploaded resumes on the local filesystem and serves them back
// through the app's /files static route.
type Disk struct {
	dir     string
	baseURL string
}

func NewDisk(cfg config.StorageConfig) (*Disk, error) {
	dir := strings.TrimSpace(cfg.Dir)
	if dir == "" {
		dir = "data/files"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Disk{
		dir:     dir,
		baseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

var _ usecase.FileStore = (*Disk)(nil)

func (d *Disk) SavePDF(ctx context.Context, jobID, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty file")
	}

	name := sanitizeFilename(filename)
	// A random prefix keeps repeated uploads of the same filename apart.
	name = uuid.NewString()[:8] + "_" + name

	jobDir := filepath.Join(d.dir, sanitizeFilename(jobID))
	if err := os.MkdirAll(jobDir, 0o755); err != nil {
		return "", fmt.Errorf("create job dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(jobDir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return d.baseURL + "/files/" + sanitizeFilename(jobID) + "/" + name, nil
}

// sanitizeFilename keeps a conservative character set so stored paths can
// never escape the storage dir or break a URL.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "resume.pdf"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := b.String()
	if strings.Trim(out, "._") == "" {
		return "resume.pdf"
	}
	return out
}
