package usecase

import (
	"context"
	"errors"
	"testing"

	"resume-review/internal/domain/profile"
	"resume-review/internal/review"

	"github.com/google/uuid"
)

// repoSource serves the session straight from the fake repository, standing
// in for the full fallback source.
type repoSource struct {
	repo *fakeProfileRepo
}

func (s *repoSource) Fetch(ctx context.Context, jobID string) ([]profile.Profile, error) {
	return s.repo.ListByJob(ctx, jobID)
}

func reviewSession(t *testing.T, repo *fakeProfileRepo, jobID string) *review.Session {
	t.Helper()
	m := review.NewManager(&repoSource{repo: repo}, nil, nil)
	s := m.Session(context.Background(), uuid.New())
	s.SetJob(context.Background(), jobID)
	if _, err := s.FetchProfiles(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	return s
}

func TestDecideShortlistAdvancesToNextPending(t *testing.T) {
	repo := newFakeProfileRepo(
		profile.Profile{ID: "a", JobID: "7", Name: "Ann", Status: profile.StatusNew, PDFURL: "https://docs.google.com/document/d/ann/edit"},
		profile.Profile{ID: "b", JobID: "7", Name: "Ben", Status: profile.StatusNew},
		profile.Profile{ID: "c", JobID: "7", Name: "Cal", Status: profile.StatusRejected},
	)
	notifier := &fakeNotifier{}
	sess := reviewSession(t, repo, "7")

	d := NewDecisionUsecase(repo, notifier, nil)
	res, err := d.Decide(context.Background(), sess, "a", profile.StatusShortlisted)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}

	// Remote row persisted.
	stored, _ := repo.get("a")
	if stored.Status != profile.StatusShortlisted {
		t.Fatalf("remote status not persisted: %s", stored.Status)
	}

	// Live list updated in place.
	live := sess.Profiles()
	want := []profile.Status{profile.StatusShortlisted, profile.StatusNew, profile.StatusRejected}
	for i, st := range want {
		if live[i].Status != st {
			t.Fatalf("live[%d] = %s, want %s", i, live[i].Status, st)
		}
	}

	// Cursor advanced to the remaining pending profile.
	if res.Next.Exhausted || res.Next.Profile == nil || res.Next.Profile.ID != "b" {
		t.Fatalf("unexpected next target: %+v", res.Next)
	}
	cur, ok := sess.Current()
	if !ok || cur.Profile.ID != "b" {
		t.Fatalf("cursor not on next pending profile: %+v", cur)
	}

	// Shortlists come with a direct-download link.
	if res.DownloadURL != "https://docs.google.com/document/d/ann/export?format=pdf" {
		t.Fatalf("unexpected download url: %q", res.DownloadURL)
	}

	events := notifier.all()
	if len(events) != 1 || events[0].kind != "profile_decided" || events[0].profileID != "a" {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestDecideRejectHasNoDownload(t *testing.T) {
	repo := newFakeProfileRepo(
		profile.Profile{ID: "a", JobID: "7", Status: profile.StatusNew, PDFURL: "https://docs.google.com/document/d/ann/edit"},
	)
	sess := reviewSession(t, repo, "7")

	d := NewDecisionUsecase(repo, nil, nil)
	res, err := d.Decide(context.Background(), sess, "a", profile.StatusRejected)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if res.DownloadURL != "" {
		t.Fatalf("reject produced a download url: %q", res.DownloadURL)
	}
	if !res.Next.Exhausted {
		t.Fatalf("expected exhaustion with a single rejected profile: %+v", res.Next)
	}
}

func TestDecideRemoteFailureLeavesSessionUntouched(t *testing.T) {
	repo := newFakeProfileRepo(
		profile.Profile{ID: "a", JobID: "7", Status: profile.StatusNew},
	)
	sess := reviewSession(t, repo, "7")
	repo.updErr = errors.New("connection reset")

	d := NewDecisionUsecase(repo, nil, nil)
	if _, err := d.Decide(context.Background(), sess, "a", profile.StatusShortlisted); err == nil {
		t.Fatalf("expected error")
	}

	live := sess.Profiles()
	if live[0].Status != profile.StatusNew {
		t.Fatalf("local state mutated after remote failure: %s", live[0].Status)
	}

	// Retry succeeds once the remote recovers.
	repo.updErr = nil
	if _, err := d.Decide(context.Background(), sess, "a", profile.StatusShortlisted); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if live := sess.Profiles(); live[0].Status != profile.StatusShortlisted {
		t.Fatalf("retry did not apply: %s", live[0].Status)
	}
}

func TestDecideValidation(t *testing.T) {
	repo := newFakeProfileRepo(
		profile.Profile{ID: "a", JobID: "7", Status: profile.StatusNew},
	)
	sess := reviewSession(t, repo, "7")
	d := NewDecisionUsecase(repo, nil, nil)

	if _, err := d.Decide(context.Background(), sess, "", profile.StatusShortlisted); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty id: got %v", err)
	}
	if _, err := d.Decide(context.Background(), sess, "a", profile.StatusNew); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("decision New: got %v", err)
	}
	if _, err := d.Decide(context.Background(), sess, "ghost", profile.StatusRejected); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown id: got %v", err)
	}
	if repo.updCalls != 0 {
		t.Fatalf("remote update attempted for invalid input")
	}
}
