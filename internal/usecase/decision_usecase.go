package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"resume-review/internal/domain/profile"
	"resume-review/internal/pkg/docurl"
	"resume-review/internal/review"
)

// EventNotifier pushes review events to connected clients. Implementations
// must never block the caller.
type EventNotifier interface {
	ProfileDecided(jobID, profileID string, status profile.Status)
	ProfilesImported(jobID string, count int)
}

// DecisionResult reports the outcome of a decide call: the updated profile,
// a download link when the decision was a shortlist, and where the reviewer's
// cursor moved next.
type DecisionResult struct {
	Profile     profile.Profile
	DownloadURL string
	Next        review.NextTarget
}

type DecisionUsecase interface {
	Decide(ctx context.Context, sess *review.Session, profileID string, status profile.Status) (DecisionResult, error)
}

// Decision applies a shortlist or reject verdict. The hosted table is updated
// first; session state only changes after the remote write succeeds, so a
// failed update leaves the profile actionable for a retry.
type Decision struct {
	repo     profile.Repository
	notifier EventNotifier
	logger   *log.Logger
}

func NewDecisionUsecase(repo profile.Repository, notifier EventNotifier, logger *log.Logger) *Decision {
	return &Decision{repo: repo, notifier: notifier, logger: logger}
}

func (d *Decision) Decide(ctx context.Context, sess *review.Session, profileID string, status profile.Status) (DecisionResult, error) {
	if profileID == "" {
		return DecisionResult{}, ErrInvalidInput
	}
	if status != profile.StatusShortlisted && status != profile.StatusRejected {
		return DecisionResult{}, ErrInvalidInput
	}

	target, ok := sess.Find(profileID)
	if !ok {
		return DecisionResult{}, ErrNotFound
	}

	if err := d.repo.UpdateStatus(ctx, profileID, status); err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return DecisionResult{}, ErrNotFound
		}
		return DecisionResult{}, fmt.Errorf("update status: %w", err)
	}

	sess.UpdateStatusLocally(profileID, status)

	if d.notifier != nil {
		d.notifier.ProfileDecided(target.JobID, profileID, status)
	}

	result := DecisionResult{Profile: target}
	result.Profile.Status = status
	if status == profile.StatusShortlisted && target.PDFURL != "" {
		result.DownloadURL = docurl.DownloadURL(target.PDFURL)
	}

	result.Next = d.advance(sess, target, profileID)
	return result, nil
}

// advance moves the session cursor to the next profile per the navigation
// policy: same category as the decided profile first, then the first category
// that still has members.
func (d *Decision) advance(sess *review.Session, decided profile.Profile, decidedID string) review.NextTarget {
	category := sess.Category()
	if category == review.CategoryAll {
		category = review.CategoryForStatus(decided.Status)
	}

	next := review.NextAfterDecision(sess.Profiles(), category, decidedID)
	if next.Exhausted || next.Profile == nil {
		sess.SetCursor(0)
		return next
	}

	if next.Category != sess.Category() && sess.Category() != review.CategoryAll {
		sess.SetCategory(next.Category)
	}
	if !sess.Seek(next.Profile.ID) && d.logger != nil {
		d.logger.Printf("[Decision] next profile %s not in filtered view", next.Profile.ID)
	}
	return next
}
