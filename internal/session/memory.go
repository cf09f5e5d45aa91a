package session

import (
	"context"
	"sync"

	"assembl/internal/domain"
)

// MemoryStore keeps sessions in process memory
type MemoryStore struct {
	sessions map[Key]*domain.Session
	mu       sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[Key]*domain.Session),
	}
}

// Get returns a copy of the session stored under key
func (s *MemoryStore) Get(_ context.Context, key Key) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, exists := s.sessions[key]
	if !exists {
		return domain.NewSession(), nil
	}
	return sess.Clone(), nil
}

// Save stores a copy of sess under key
func (s *MemoryStore) Save(_ context.Context, key Key, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[key] = sess.Clone()
	return nil
}

// Clear drops the session stored under key
func (s *MemoryStore) Clear(_ context.Context, key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, key)
	return nil
}
