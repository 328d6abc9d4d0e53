package postgres

import (
	"context"
	"time"

	"resume-review/internal/database"
	"resume-review/internal/domain/profile"
)

type ProfileRepository struct {
	db database.DB
}

func NewProfileRepository(db database.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `id, job_id, name, email, status, pdf_url, updated_at`

func (r *ProfileRepository) ListByJob(ctx context.Context, jobID string) ([]profile.Profile, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+profileColumns+`
		 FROM resumes
		 WHERE job_id = $1
		 ORDER BY updated_at ASC, id ASC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProfiles(rows)
}

func (r *ProfileRepository) ListAll(ctx context.Context) ([]profile.Profile, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+profileColumns+`
		 FROM resumes
		 ORDER BY job_id ASC, updated_at ASC, id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProfiles(rows)
}

func (r *ProfileRepository) Insert(ctx context.Context, p profile.Profile) error {
	updatedAt := p.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO resumes (id, job_id, name, email, status, pdf_url, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO NOTHING`,
		p.ID, p.JobID, p.Name, p.Email, string(p.Status), p.PDFURL, updatedAt,
	)
	return err
}

func (r *ProfileRepository) UpdateStatus(ctx context.Context, id string, status profile.Status) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE resumes SET status = $1, updated_at = $2 WHERE id = $3`,
		string(status), time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return profile.ErrNotFound
	}
	return nil
}

func scanProfiles(rows database.Rows) ([]profile.Profile, error) {
	out := make([]profile.Profile, 0)
	for rows.Next() {
		var p profile.Profile
		var status string
		if err := rows.Scan(&p.ID, &p.JobID, &p.Name, &p.Email, &status, &p.PDFURL, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.Status = profile.ParseStatus(status)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

var _ profile.Repository = (*ProfileRepository)(nil)
