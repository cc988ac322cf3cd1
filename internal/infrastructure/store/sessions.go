package store

import (
	"context"
	"sync"
	"time"

	"github.com/liketelecom/fieldservice/internal/core/domain"
)

// MemorySessionStore holds sessions in process memory. Suitable for a single
// instance; use the Redis-backed store when sessions must survive restarts.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]*domain.Session)}
}

func (m *MemorySessionStore) Put(_ context.Context, s *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *s
	m.sessions[s.ID] = &clone
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	// Expired entries are reaped lazily on access.
	if s.Expired(time.Now().UTC()) {
		delete(m.sessions, id)
		return nil, domain.ErrSessionExpired
	}
	clone := *s
	return &clone, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
