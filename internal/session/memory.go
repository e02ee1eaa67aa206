package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store used in tests and single-node setups
// that do not need to survive restarts.
type MemoryStore struct {
	mu     sync.RWMutex
	slots  map[Kind]Session
	audits map[Kind]LastLogout
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		slots:  make(map[Kind]Session),
		audits: make(map[Kind]LastLogout),
	}
}

func (s *MemoryStore) Load(_ context.Context, kind Kind) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.slots[kind]
	if !ok {
		return nil, nil
	}
	return &sess, nil
}

func (s *MemoryStore) Save(_ context.Context, kind Kind, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots[kind] = sess
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, kind Kind) (*LastLogout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.slots[kind]
	if !ok {
		return nil, nil
	}
	delete(s.slots, kind)

	audit := LastLogout{
		Kind:            kind,
		LogoutAt:        time.Now(),
		DurationSeconds: int64(time.Since(existing.LoginAt) / time.Second),
	}
	s.audits[kind] = audit
	return &audit, nil
}

func (s *MemoryStore) LastLogout(_ context.Context, kind Kind) (*LastLogout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	audit, ok := s.audits[kind]
	if !ok {
		return nil, nil
	}
	return &audit, nil
}
