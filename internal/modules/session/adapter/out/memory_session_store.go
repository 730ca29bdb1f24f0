package out

import (
	"context"
	"sync"

	"classsign/internal/modules/session/domain"
	sessionout "classsign/internal/modules/session/port/out"
	apperrors "classsign/internal/platform/errors"
)

// MemorySessionStore keeps the session in process memory. Safe for
// concurrent use.
type MemorySessionStore struct {
	mu      sync.RWMutex
	session domain.Session
}

func NewMemorySessionStore() sessionout.SessionStore {
	return &MemorySessionStore{}
}

func (s *MemorySessionStore) Save(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
	return nil
}

func (s *MemorySessionStore) Load(_ context.Context) (domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.session.Valid() {
		return domain.Session{}, apperrors.ErrNoSession
	}
	return s.session, nil
}

func (s *MemorySessionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = domain.Session{}
	return nil
}
