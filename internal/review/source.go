package review

import (
	"context"

	"resume-review/internal/domain/profile"

	"github.com/google/uuid"
)

// ProfileSource supplies the candidate list for a job. The production
// implementation applies the hosted-table-first, spreadsheet-fallback
// policy; the session never knows which backend answered.
type ProfileSource interface {
	Fetch(ctx context.Context, jobID string) ([]profile.Profile, error)
}

// SessionStore persists the active job per reviewer so a session survives a
// reconnect. Implementations are best-effort; persistence failures must not
// break the session.
type SessionStore interface {
	SaveJob(ctx context.Context, userID uuid.UUID, jobID string) error
	LoadJob(ctx context.Context, userID uuid.UUID) (string, bool, error)
	ClearJob(ctx context.Context, userID uuid.UUID) error
}
