package usecase

import (
	"context"
	"sync"
	"time"

	"resume-review/internal/domain/profile"
)

type fakeProfileRepo struct {
	mu       sync.Mutex
	rows     map[string]profile.Profile
	order    []string
	listErr  error
	insErr   error
	updErr   error
	updCalls int
}

func newFakeProfileRepo(rows ...profile.Profile) *fakeProfileRepo {
	r := &fakeProfileRepo{rows: make(map[string]profile.Profile)}
	for _, p := range rows {
		r.rows[p.ID] = p
		r.order = append(r.order, p.ID)
	}
	return r
}

func (r *fakeProfileRepo) ListByJob(ctx context.Context, jobID string) ([]profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []profile.Profile
	for _, id := range r.order {
		if r.rows[id].JobID == jobID {
			out = append(out, r.rows[id])
		}
	}
	return out, nil
}

func (r *fakeProfileRepo) ListAll(ctx context.Context) ([]profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]profile.Profile, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.rows[id])
	}
	return out, nil
}

func (r *fakeProfileRepo) Insert(ctx context.Context, p profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insErr != nil {
		return r.insErr
	}
	if _, ok := r.rows[p.ID]; !ok {
		r.order = append(r.order, p.ID)
	}
	r.rows[p.ID] = p
	return nil
}

func (r *fakeProfileRepo) UpdateStatus(ctx context.Context, id string, status profile.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updCalls++
	if r.updErr != nil {
		return r.updErr
	}
	p, ok := r.rows[id]
	if !ok {
		return profile.ErrNotFound
	}
	p.Status = status
	p.UpdatedAt = time.Now()
	r.rows[id] = p
	return nil
}

func (r *fakeProfileRepo) get(id string) (profile.Profile, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	return p, ok
}

type fakeSheetClient struct {
	raw   string
	err   error
	calls int
}

func (c *fakeSheetClient) FetchRaw(ctx context.Context) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return c.raw, nil
}

type fakeLocker struct {
	mu       sync.Mutex
	acquired map[string]bool
	deny     bool
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{acquired: make(map[string]bool)}
}

func (l *fakeLocker) SetIfNotExists(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.deny || l.acquired[key] {
		return false, nil
	}
	l.acquired[key] = true
	return true, nil
}

type notifierEvent struct {
	kind      string
	jobID     string
	profileID string
	status    profile.Status
	count     int
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []notifierEvent
}

func (n *fakeNotifier) ProfileDecided(jobID, profileID string, status profile.Status) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notifierEvent{kind: "profile_decided", jobID: jobID, profileID: profileID, status: status})
}

func (n *fakeNotifier) ProfilesImported(jobID string, count int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notifierEvent{kind: "profiles_imported", jobID: jobID, count: count})
}

func (n *fakeNotifier) all() []notifierEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]notifierEvent, len(n.events))
	copy(out, n.events)
	return out
}

type fakeFileStore struct {
	saved map[string][]byte
	err   error
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{saved: make(map[string][]byte)}
}

func (f *fakeFileStore) SavePDF(ctx context.Context, jobID, filename string, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	key := jobID + "/" + filename
	f.saved[key] = data
	return "http://localhost/files/" + key, nil
}
