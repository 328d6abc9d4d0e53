package review

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"resume-review/internal/domain/profile"

	"github.com/google/uuid"
)

type fakeSource struct {
	mu      sync.Mutex
	byJob   map[string][]profile.Profile
	err     error
	calls   atomic.Int32
	release chan struct{} // when set, Fetch blocks until closed
}

func (f *fakeSource) Fetch(ctx context.Context, jobID string) ([]profile.Profile, error) {
	f.calls.Add(1)
	f.mu.Lock()
	release := f.release
	f.mu.Unlock()
	if release != nil {
		<-release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.byJob[jobID], nil
}

func (f *fakeSource) setRelease(ch chan struct{}) {
	f.mu.Lock()
	f.release = ch
	f.mu.Unlock()
}

type fakeStore struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{jobs: make(map[uuid.UUID]string)}
}

func (f *fakeStore) SaveJob(ctx context.Context, userID uuid.UUID, jobID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs[userID] = jobID
	return nil
}

func (f *fakeStore) LoadJob(ctx context.Context, userID uuid.UUID) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	j, ok := f.jobs[userID]
	return j, ok, nil
}

func (f *fakeStore) ClearJob(ctx context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.jobs, userID)
	return nil
}

func jobProfiles(jobID string, statuses ...profile.Status) []profile.Profile {
	out := make([]profile.Profile, 0, len(statuses))
	for i, st := range statuses {
		out = append(out, profile.Profile{
			ID:     jobID + "-" + string(rune('a'+i)),
			JobID:  jobID,
			Status: st,
		})
	}
	return out
}

func TestFetchProfilesCacheIdempotence(t *testing.T) {
	src := &fakeSource{byJob: map[string][]profile.Profile{
		"42": jobProfiles("42", profile.StatusNew, profile.StatusRejected),
	}}
	s := newSession(uuid.New(), src, nil, nil)
	s.SetJob(context.Background(), "42")

	first, err := s.FetchProfiles(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second, err := s.FetchProfiles(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if src.calls.Load() != 1 {
		t.Fatalf("expected 1 remote call, got %d", src.calls.Load())
	}
	if len(first) != len(second) {
		t.Fatalf("results differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("results differ at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestFetchProfilesCachesEmptyResult(t *testing.T) {
	src := &fakeSource{byJob: map[string][]profile.Profile{}}
	s := newSession(uuid.New(), src, nil, nil)
	s.SetJob(context.Background(), "empty")

	if _, err := s.FetchProfiles(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := s.FetchProfiles(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if src.calls.Load() != 1 {
		t.Fatalf("known-empty job re-fetched: %d calls", src.calls.Load())
	}
}

func TestFetchProfilesErrorNotCached(t *testing.T) {
	src := &fakeSource{err: errors.New("remote down")}
	s := newSession(uuid.New(), src, nil, nil)
	s.SetJob(context.Background(), "42")

	if _, err := s.FetchProfiles(context.Background()); err == nil {
		t.Fatalf("expected error")
	}

	src.err = nil
	src.byJob = map[string][]profile.Profile{"42": jobProfiles("42", profile.StatusNew)}
	got, err := s.FetchProfiles(context.Background())
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 profile after retry, got %d", len(got))
	}
}

func TestFetchProfilesJoinsInflightCall(t *testing.T) {
	release := make(chan struct{})
	src := &fakeSource{
		byJob:   map[string][]profile.Profile{"42": jobProfiles("42", profile.StatusNew)},
		release: release,
	}
	s := newSession(uuid.New(), src, nil, nil)
	s.SetJob(context.Background(), "42")

	var wg sync.WaitGroup
	results := make([][]profile.Profile, 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		got, err := s.FetchProfiles(context.Background())
		if err != nil {
			t.Errorf("first fetch: %v", err)
			return
		}
		results[0] = got
	}()

	// Wait for the first call to be in flight, then issue a second one that
	// must join it instead of hitting the source again.
	for src.calls.Load() == 0 {
		runtime.Gosched()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		got, err := s.FetchProfiles(context.Background())
		if err != nil {
			t.Errorf("second fetch: %v", err)
			return
		}
		results[1] = got
	}()

	close(release)
	wg.Wait()

	if src.calls.Load() != 1 {
		t.Fatalf("expected 1 remote call, got %d", src.calls.Load())
	}
	if len(results[0]) != 1 || len(results[1]) != 1 {
		t.Fatalf("joiner missed the result: %v / %v", results[0], results[1])
	}
}

func TestStaleFetchDoesNotOverwriteActiveJob(t *testing.T) {
	release := make(chan struct{})
	src := &fakeSource{
		byJob: map[string][]profile.Profile{
			"A": jobProfiles("A", profile.StatusNew, profile.StatusNew),
			"B": jobProfiles("B", profile.StatusNew),
		},
		release: release,
	}
	s := newSession(uuid.New(), src, nil, nil)
	s.SetJob(context.Background(), "A")

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.FetchProfiles(context.Background())
	}()
	for src.calls.Load() == 0 {
		runtime.Gosched()
	}

	// Switch jobs while the fetch for A is still outstanding, and let B's
	// fetch complete first.
	s.SetJob(context.Background(), "B")
	src.setRelease(nil)
	if _, err := s.FetchProfiles(context.Background()); err != nil {
		t.Fatalf("fetch B: %v", err)
	}

	close(release)
	<-done

	live := s.Profiles()
	if len(live) != 1 || live[0].JobID != "B" {
		t.Fatalf("stale fetch overwrote live list: %+v", live)
	}

	// A's result still landed in the cache for a later switch back.
	s.SetJob(context.Background(), "A")
	got, err := s.FetchProfiles(context.Background())
	if err != nil {
		t.Fatalf("fetch A: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("cached A result lost: %d", len(got))
	}
	if calls := src.calls.Load(); calls != 2 {
		t.Fatalf("expected 2 remote calls, got %d", calls)
	}
}

func TestSetJobClearsLiveListAndKeepsCache(t *testing.T) {
	src := &fakeSource{byJob: map[string][]profile.Profile{
		"A": jobProfiles("A", profile.StatusNew),
		"B": jobProfiles("B", profile.StatusNew),
	}}
	s := newSession(uuid.New(), src, nil, nil)

	s.SetJob(context.Background(), "A")
	if _, err := s.FetchProfiles(context.Background()); err != nil {
		t.Fatalf("fetch A: %v", err)
	}

	s.SetJob(context.Background(), "B")
	if got := s.Profiles(); len(got) != 0 {
		t.Fatalf("live list not cleared on job switch: %+v", got)
	}
	if _, err := s.FetchProfiles(context.Background()); err != nil {
		t.Fatalf("fetch B: %v", err)
	}

	s.SetJob(context.Background(), "A")
	if _, err := s.FetchProfiles(context.Background()); err != nil {
		t.Fatalf("refetch A: %v", err)
	}
	if calls := src.calls.Load(); calls != 2 {
		t.Fatalf("cache for A lost across switches: %d calls", calls)
	}
}

func TestUpdateStatusLocallyTouchesLiveListAndCache(t *testing.T) {
	src := &fakeSource{byJob: map[string][]profile.Profile{
		"42": jobProfiles("42", profile.StatusNew, profile.StatusNew),
	}}
	s := newSession(uuid.New(), src, nil, nil)
	s.SetJob(context.Background(), "42")
	if _, err := s.FetchProfiles(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	before := s.Profiles()
	if !s.UpdateStatusLocally("42-a", profile.StatusShortlisted) {
		t.Fatalf("update reported no match")
	}

	// Earlier snapshots stay untouched: lists are replaced, not mutated.
	if before[0].Status != profile.StatusNew {
		t.Fatalf("snapshot mutated in place")
	}

	live := s.Profiles()
	if live[0].Status != profile.StatusShortlisted {
		t.Fatalf("live list not updated: %+v", live[0])
	}

	// The cache entry was updated too: a refetch serves the new status.
	got, err := s.FetchProfiles(context.Background())
	if err != nil {
		t.Fatalf("refetch: %v", err)
	}
	if got[0].Status != profile.StatusShortlisted {
		t.Fatalf("cache entry not updated: %+v", got[0])
	}

	if s.UpdateStatusLocally("missing", profile.StatusRejected) {
		t.Fatalf("update matched a missing profile")
	}
}

func TestCursorOperations(t *testing.T) {
	src := &fakeSource{byJob: map[string][]profile.Profile{
		"42": jobProfiles("42", profile.StatusNew, profile.StatusNew, profile.StatusNew),
	}}
	s := newSession(uuid.New(), src, nil, nil)
	s.SetJob(context.Background(), "42")
	if _, err := s.FetchProfiles(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	cur, ok := s.Current()
	if !ok || cur.Index != 0 || !cur.HasNext || cur.HasPrevious {
		t.Fatalf("unexpected initial view: %+v", cur)
	}

	if !s.Advance() {
		t.Fatalf("advance failed")
	}
	if !s.Advance() {
		t.Fatalf("advance failed")
	}
	if s.Advance() {
		t.Fatalf("advanced past the end")
	}

	cur, _ = s.Current()
	if cur.Index != 2 || cur.HasNext || !cur.HasPrevious {
		t.Fatalf("unexpected view at end: %+v", cur)
	}

	if !s.Retreat() {
		t.Fatalf("retreat failed")
	}
	if !s.SetCursor(0) {
		t.Fatalf("set cursor failed")
	}
	if s.SetCursor(3) {
		t.Fatalf("cursor set out of bounds")
	}
	if !s.Seek("42-c") {
		t.Fatalf("seek failed")
	}
	cur, _ = s.Current()
	if cur.Profile.ID != "42-c" {
		t.Fatalf("seek landed on %s", cur.Profile.ID)
	}
}

func TestSetCategoryResetsCursor(t *testing.T) {
	src := &fakeSource{byJob: map[string][]profile.Profile{
		"42": jobProfiles("42", profile.StatusNew, profile.StatusNew, profile.StatusShortlisted),
	}}
	s := newSession(uuid.New(), src, nil, nil)
	s.SetJob(context.Background(), "42")
	if _, err := s.FetchProfiles(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	s.Advance()

	s.SetCategory(CategoryShortlisted)
	cur, ok := s.Current()
	if !ok || cur.Index != 0 || cur.Total != 1 {
		t.Fatalf("unexpected view after category switch: %+v", cur)
	}
}

func TestClearEmptiesLiveListButKeepsCache(t *testing.T) {
	src := &fakeSource{byJob: map[string][]profile.Profile{
		"42": jobProfiles("42", profile.StatusNew),
	}}
	s := newSession(uuid.New(), src, nil, nil)
	s.SetJob(context.Background(), "42")
	if _, err := s.FetchProfiles(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	s.Clear()
	if got := s.Profiles(); len(got) != 0 {
		t.Fatalf("live list survived Clear: %+v", got)
	}

	// The next fetch is served from the cache, no remote call.
	if _, err := s.FetchProfiles(context.Background()); err != nil {
		t.Fatalf("refetch: %v", err)
	}
	if src.calls.Load() != 1 {
		t.Fatalf("cache lost on Clear: %d calls", src.calls.Load())
	}
	if got := s.Profiles(); len(got) != 1 {
		t.Fatalf("live list not recommitted from cache: %+v", got)
	}
}

func TestFetchProfilesRequiresJob(t *testing.T) {
	s := newSession(uuid.New(), &fakeSource{}, nil, nil)
	if _, err := s.FetchProfiles(context.Background()); !errors.Is(err, ErrNoJob) {
		t.Fatalf("expected ErrNoJob, got %v", err)
	}
}

func TestManagerRestoresPersistedJob(t *testing.T) {
	store := newFakeStore()
	userID := uuid.New()
	if err := store.SaveJob(context.Background(), userID, "42"); err != nil {
		t.Fatalf("save: %v", err)
	}

	m := NewManager(&fakeSource{}, store, nil)
	s := m.Session(context.Background(), userID)
	if s.JobID() != "42" {
		t.Fatalf("persisted job not restored: %q", s.JobID())
	}

	// Same session object on repeat access.
	if m.Session(context.Background(), userID) != s {
		t.Fatalf("session not reused")
	}
}

func TestManagerEndSessionClearsEverything(t *testing.T) {
	store := newFakeStore()
	userID := uuid.New()
	src := &fakeSource{byJob: map[string][]profile.Profile{
		"42": jobProfiles("42", profile.StatusNew),
	}}

	m := NewManager(src, store, nil)
	s := m.Session(context.Background(), userID)
	s.SetJob(context.Background(), "42")
	if _, err := s.FetchProfiles(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	m.EndSession(context.Background(), userID)

	if _, found, _ := store.LoadJob(context.Background(), userID); found {
		t.Fatalf("persisted job survived logout")
	}
	fresh := m.Session(context.Background(), userID)
	if fresh == s {
		t.Fatalf("old session object returned after logout")
	}
	if fresh.JobID() != "" {
		t.Fatalf("fresh session has a job: %q", fresh.JobID())
	}
}
