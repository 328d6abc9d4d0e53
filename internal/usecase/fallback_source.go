package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"resume-review/internal/domain/profile"
	"resume-review/internal/infrastructure/sheetapi"
	"resume-review/internal/review"
	"resume-review/internal/sheet"
	"resume-review/internal/worker"
)

const (
	importLockTTL     = 5 * time.Minute
	importTaskTimeout = 30 * time.Second
)

// ImportLocker guards the spreadsheet import so only one instance imports a
// given job's rows at a time.
type ImportLocker interface {
	SetIfNotExists(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
}

// FallbackSource implements the hosted-table-first fetch policy. The hosted
// table is authoritative once populated; a job with zero rows falls back to
// the spreadsheet, and rows found there are imported into the table in the
// background so the next fetch is served locally.
type FallbackSource struct {
	repo   profile.Repository
	sheets sheetapi.Client
	queue  *worker.Queue
	locks  ImportLocker
	logger *log.Logger
}

func NewFallbackSource(repo profile.Repository, sheets sheetapi.Client, queue *worker.Queue, locks ImportLocker, logger *log.Logger) *FallbackSource {
	return &FallbackSource{
		repo:   repo,
		sheets: sheets,
		queue:  queue,
		locks:  locks,
		logger: logger,
	}
}

var _ review.ProfileSource = (*FallbackSource)(nil)

// Fetch queries the hosted table and falls back to the spreadsheet on an
// empty result. Table errors propagate; an empty table plus an empty
// spreadsheet is a valid "no profiles" outcome, not an error.
func (f *FallbackSource) Fetch(ctx context.Context, jobID string) ([]profile.Profile, error) {
	rows, err := f.repo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("list profiles for job %s: %w", jobID, err)
	}
	if len(rows) > 0 {
		return rows, nil
	}

	if f.sheets == nil {
		return nil, nil
	}

	raw, err := f.sheets.FetchRaw(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch spreadsheet: %w", err)
	}

	parsed := sheet.ParseProfiles(raw, jobID)
	if len(parsed) > 0 {
		f.enqueueImport(ctx, jobID, parsed)
	}
	return parsed, nil
}

// enqueueImport schedules a best-effort one-way sync of spreadsheet rows into
// the hosted table. Failures are logged by the queue; the caller already has
// its rows and is never blocked on the import.
func (f *FallbackSource) enqueueImport(ctx context.Context, jobID string, rows []profile.Profile) {
	if f.queue == nil {
		return
	}

	if f.locks != nil {
		acquired, err := f.locks.SetIfNotExists(ctx, "import:job:"+jobID, "1", importLockTTL)
		if err != nil {
			if f.logger != nil {
				f.logger.Printf("[Import] lock for job %s failed, importing anyway: %v", jobID, err)
			}
		} else if !acquired {
			return
		}
	}

	for _, row := range rows {
		row := row
		f.queue.Submit(func(context.Context) error {
			taskCtx, cancel := context.WithTimeout(context.Background(), importTaskTimeout)
			defer cancel()
			if err := f.repo.Insert(taskCtx, row); err != nil {
				return fmt.Errorf("import profile %s for job %s: %w", row.ID, jobID, err)
			}
			return nil
		})
	}

	if f.logger != nil {
		f.logger.Printf("[Import] queued %d rows for job %s", len(rows), jobID)
	}
}
