package dto

import (
	"resume-review/internal/domain/profile"
	"resume-review/internal/review"
)

type SessionResponse struct {
	JobID    string        `json:"job_id"`
	Category string        `json:"category"`
	Cursor   int           `json:"cursor"`
	Stats    profile.Stats `json:"stats"`
}

func FromSnapshot(s review.Snapshot) SessionResponse {
	return SessionResponse{
		JobID:    s.JobID,
		Category: string(s.Category),
		Cursor:   s.Cursor,
		Stats:    s.Stats,
	}
}
