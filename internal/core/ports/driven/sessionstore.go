package driven

import (
	"context"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

// SessionStore persists sessions as files.
type SessionStore interface {
	// Save writes the session to path.
	Save(ctx context.Context, path string, session *domain.Session) error

	// Load reads a session from path.
	// Returns domain.ErrNotFound if the file does not exist.
	Load(ctx context.Context, path string) (*domain.Session, error)
}
