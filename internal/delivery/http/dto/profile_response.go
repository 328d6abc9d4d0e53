package dto

import (
	"time"

	"resume-review/internal/domain/profile"
	"resume-review/internal/pkg/docurl"
	"resume-review/internal/review"
)

type ProfileResponse struct {
	ID        string    `json:"id"`
	JobID     string    `json:"job_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	PDFURL    string    `json:"pdf_url"`
	EmbedURL  string    `json:"embed_url,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

func FromProfile(p profile.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        p.ID,
		JobID:     p.JobID,
		Name:      p.Name,
		Email:     p.Email,
		Status:    string(p.Status),
		PDFURL:    p.PDFURL,
		EmbedURL:  docurl.EmbedURL(p.PDFURL),
		UpdatedAt: p.UpdatedAt,
	}
}

func FromProfiles(in []profile.Profile) []ProfileResponse {
	out := make([]ProfileResponse, 0, len(in))
	for _, p := range in {
		out = append(out, FromProfile(p))
	}
	return out
}

type ProfileListResponse struct {
	Profiles []ProfileResponse `json:"profiles"`
	Stats    profile.Stats     `json:"stats"`
}

type CurrentProfileResponse struct {
	Profile     ProfileResponse   `json:"profile"`
	Index       int               `json:"index"`
	Total       int               `json:"total"`
	HasNext     bool              `json:"has_next"`
	HasPrevious bool              `json:"has_previous"`
	Pages       []review.PageItem `json:"pages"`
}

func FromCurrentView(v review.CurrentView) CurrentProfileResponse {
	return CurrentProfileResponse{
		Profile:     FromProfile(v.Profile),
		Index:       v.Index,
		Total:       v.Total,
		HasNext:     v.HasNext,
		HasPrevious: v.HasPrevious,
		Pages:       v.Pages,
	}
}

type DecisionResponse struct {
	Profile      ProfileResponse  `json:"profile"`
	DownloadURL  string           `json:"download_url,omitempty"`
	Next         *ProfileResponse `json:"next,omitempty"`
	NextCategory string           `json:"next_category,omitempty"`
	Exhausted    bool             `json:"exhausted"`
}
