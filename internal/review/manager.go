package review

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Manager hands out one Session per reviewer and owns their lifecycle.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session

	source ProfileSource
	store  SessionStore
	logger *log.Logger
}

func NewManager(source ProfileSource, store SessionStore, logger *log.Logger) *Manager {
	return &Manager{
		sessions: make(map[uuid.UUID]*Session),
		source:   source,
		store:    store,
		logger:   logger,
	}
}

// Session returns the reviewer's session, creating it on first access. A
// newly created session restores the persisted job ID, so a reviewer who
// reconnects lands on the job they were working.
func (m *Manager) Session(ctx context.Context, userID uuid.UUID) *Session {
	m.mu.Lock()
	s, ok := m.sessions[userID]
	if !ok {
		s = newSession(userID, m.source, m.store, m.logger)
		m.sessions[userID] = s
	}
	m.mu.Unlock()

	if !ok && m.store != nil {
		jobID, found, err := m.store.LoadJob(ctx, userID)
		if err != nil {
			if m.logger != nil {
				m.logger.Printf("[Session] restore job failed user=%s err=%v", userID, err)
			}
		} else if found && jobID != "" {
			s.SetJob(ctx, jobID)
		}
	}

	return s
}

// EndSession drops the reviewer's session and the persisted job ID. Used on
// logout: the next login starts clean.
func (m *Manager) EndSession(ctx context.Context, userID uuid.UUID) {
	m.mu.Lock()
	s, ok := m.sessions[userID]
	delete(m.sessions, userID)
	m.mu.Unlock()

	if ok {
		s.reset()
	}
	if m.store != nil {
		if err := m.store.ClearJob(ctx, userID); err != nil && m.logger != nil {
			m.logger.Printf("[Session] clear persisted job failed user=%s err=%v", userID, err)
		}
	}
}
