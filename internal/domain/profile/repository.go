package profile

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("profile not found")

// Repository is the hosted-table side of the remote profile source.
type Repository interface {
	ListByJob(ctx context.Context, jobID string) ([]Profile, error)
	ListAll(ctx context.Context) ([]Profile, error)
	Insert(ctx context.Context, p Profile) error
	UpdateStatus(ctx context.Context, id string, status Status) error
}
