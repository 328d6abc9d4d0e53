package review

import (
	"context"
	"errors"
	"log"
	"sync"

	"resume-review/internal/domain/profile"

	"github.com/google/uuid"
)

var ErrNoJob = errors.New("no active job")

// Session owns one reviewer's working state: the active job, the live
// profile list, a per-job cache, the category filter and the cursor into the
// filtered view. Fetches are served through the cache; concurrent fetches
// for the same job share a single remote call.
//
// All state is guarded by one mutex: handlers run on separate goroutines.
type Session struct {
	mu sync.Mutex

	userID   uuid.UUID
	jobID    string
	profiles []profile.Profile
	category Category
	cursor   int

	// cache maps jobID to the last fetched list. Presence means "known",
	// including known-empty, so a genuinely empty job is not re-fetched on
	// every call.
	cache map[string][]profile.Profile

	inflight map[string]*fetchCall

	source ProfileSource
	store  SessionStore
	logger *log.Logger
}

type fetchCall struct {
	done     chan struct{}
	profiles []profile.Profile
	err      error
}

func newSession(userID uuid.UUID, source ProfileSource, store SessionStore, logger *log.Logger) *Session {
	return &Session{
		userID:   userID,
		category: CategoryAll,
		cache:    make(map[string][]profile.Profile),
		inflight: make(map[string]*fetchCall),
		source:   source,
		store:    store,
		logger:   logger,
	}
}

// SetJob switches the active job. The live list is cleared so stale data is
// never shown during the transition; no fetch is issued here. The job ID is
// persisted so the session can be resumed later.
func (s *Session) SetJob(ctx context.Context, jobID string) {
	s.mu.Lock()
	if jobID != s.jobID {
		s.jobID = jobID
		s.profiles = nil
		s.cursor = 0
		s.category = CategoryAll
	}
	s.mu.Unlock()

	if s.store != nil && jobID != "" {
		if err := s.store.SaveJob(ctx, s.userID, jobID); err != nil && s.logger != nil {
			s.logger.Printf("[Session] persist job failed user=%s job=%s err=%v", s.userID, jobID, err)
		}
	}
}

func (s *Session) JobID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobID
}

// FetchProfiles returns the candidate list for the active job. Cached lists
// (including known-empty ones) are returned without a remote call. A fetch
// already in flight for the same job is joined, never duplicated. A fetch
// that resolves after the active job changed is cached but not committed to
// the live list.
func (s *Session) FetchProfiles(ctx context.Context) ([]profile.Profile, error) {
	s.mu.Lock()
	jobID := s.jobID
	if jobID == "" {
		s.mu.Unlock()
		return nil, ErrNoJob
	}

	if cached, ok := s.cache[jobID]; ok {
		if s.profiles == nil {
			s.commitLocked(jobID, cached)
		}
		out := cloneProfiles(cached)
		s.mu.Unlock()
		return out, nil
	}

	if call, ok := s.inflight[jobID]; ok {
		s.mu.Unlock()
		select {
		case <-call.done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if call.err != nil {
			return nil, call.err
		}
		return cloneProfiles(call.profiles), nil
	}

	call := &fetchCall{done: make(chan struct{})}
	s.inflight[jobID] = call
	s.mu.Unlock()

	profiles, err := s.source.Fetch(ctx, jobID)

	s.mu.Lock()
	delete(s.inflight, jobID)
	call.profiles = profiles
	call.err = err
	if err == nil {
		s.cache[jobID] = cloneProfiles(profiles)
		if s.jobID == jobID {
			s.commitLocked(jobID, profiles)
		} else if s.logger != nil {
			s.logger.Printf("[Session] stale fetch discarded user=%s fetched_job=%s active_job=%s", s.userID, jobID, s.jobID)
		}
	}
	s.mu.Unlock()
	close(call.done)

	if err != nil {
		return nil, err
	}
	return cloneProfiles(profiles), nil
}

// commitLocked installs a fetched list as the live list and positions the
// cursor per the landing policy. Caller holds s.mu.
func (s *Session) commitLocked(jobID string, profiles []profile.Profile) {
	s.profiles = cloneProfiles(profiles)
	filtered := Filter(s.profiles, s.category)
	if s.category == CategoryAll {
		s.cursor = LandingIndex(filtered)
	} else {
		s.cursor = 0
	}
}

func (s *Session) SetCategory(c Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.category = c
	s.cursor = 0
}

func (s *Session) Category() Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.category
}

// UpdateStatusLocally replaces the matching record's status in the live list
// and the cache entry. Both lists are rebuilt by value so earlier snapshots
// handed to callers stay untouched.
func (s *Session) UpdateStatusLocally(id string, status profile.Status) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := false
	s.profiles, replaced = replaceStatus(s.profiles, id, status)
	if cached, ok := s.cache[s.jobID]; ok {
		updated, ok2 := replaceStatus(cached, id, status)
		if ok2 {
			s.cache[s.jobID] = updated
		}
	}
	return replaced
}

// Find returns the profile with the given ID from the live list.
func (s *Session) Find(id string) (profile.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.profiles {
		if p.ID == id {
			return p, true
		}
	}
	return profile.Profile{}, false
}

// Profiles returns a snapshot of the live list.
func (s *Session) Profiles() []profile.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneProfiles(s.profiles)
}

func (s *Session) FilteredProfiles() []profile.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Filter(s.profiles, s.category)
}

func (s *Session) Stats() profile.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return profile.CountStats(s.profiles)
}

// CurrentView describes the profile under the cursor within the filtered
// view, with everything the pager needs.
type CurrentView struct {
	Profile     profile.Profile
	Index       int
	Total       int
	HasNext     bool
	HasPrevious bool
	Pages       []PageItem
}

func (s *Session) Current() (CurrentView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := Filter(s.profiles, s.category)
	if len(filtered) == 0 || s.cursor < 0 || s.cursor >= len(filtered) {
		return CurrentView{}, false
	}

	return CurrentView{
		Profile:     filtered[s.cursor],
		Index:       s.cursor,
		Total:       len(filtered),
		HasNext:     s.cursor < len(filtered)-1,
		HasPrevious: s.cursor > 0,
		Pages:       PageItems(len(filtered), s.cursor+1),
	}, true
}

func (s *Session) Advance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	filtered := Filter(s.profiles, s.category)
	if s.cursor < len(filtered)-1 {
		s.cursor++
		return true
	}
	return false
}

func (s *Session) Retreat() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor > 0 {
		s.cursor--
		return true
	}
	return false
}

// SetCursor positions the cursor, bounds-checked against the filtered view.
func (s *Session) SetCursor(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	filtered := Filter(s.profiles, s.category)
	if i < 0 || i >= len(filtered) {
		return false
	}
	s.cursor = i
	return true
}

// Seek moves the cursor to the given profile within the filtered view.
func (s *Session) Seek(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	filtered := Filter(s.profiles, s.category)
	for i, p := range filtered {
		if p.ID == id {
			s.cursor = i
			return true
		}
	}
	return false
}

// Clear empties the live list and resets the cursor; cache entries survive.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles = nil
	s.cursor = 0
}

// Snapshot is the session summary served to clients.
type Snapshot struct {
	JobID    string
	Category Category
	Cursor   int
	Stats    profile.Stats
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		JobID:    s.jobID,
		Category: s.category,
		Cursor:   s.cursor,
		Stats:    profile.CountStats(s.profiles),
	}
}

func (s *Session) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobID = ""
	s.profiles = nil
	s.cursor = 0
	s.category = CategoryAll
	s.cache = make(map[string][]profile.Profile)
}

func cloneProfiles(in []profile.Profile) []profile.Profile {
	if in == nil {
		return nil
	}
	out := make([]profile.Profile, len(in))
	copy(out, in)
	return out
}

func replaceStatus(in []profile.Profile, id string, status profile.Status) ([]profile.Profile, bool) {
	replaced := false
	out := make([]profile.Profile, len(in))
	for i, p := range in {
		if p.ID == id {
			p.Status = status
			replaced = true
		}
		out[i] = p
	}
	if !replaced {
		return in, false
	}
	return out, true
}
