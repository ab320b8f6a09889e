package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/vmt/internal/core/domain"
	"github.com/custodia-labs/vmt/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore keeps sessions in memory keyed by path.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]domain.Session)}
}

// Save stores a copy of session under path.
func (s *SessionStore) Save(_ context.Context, path string, session *domain.Session) error {
	if session == nil {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[path] = cloneSession(session)
	return nil
}

// Load returns a copy of the session stored under path.
func (s *SessionStore) Load(_ context.Context, path string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cloneSession(&session)
	return &out, nil
}

func cloneSession(src *domain.Session) domain.Session {
	out := *src
	out.Queries = append([]string(nil), src.Queries...)
	out.Selected = make(map[string]domain.MediaResult, len(src.Selected))
	for k, v := range src.Selected {
		out.Selected[k] = v
	}
	return out
}
