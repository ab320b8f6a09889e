package driving

import (
	"context"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

// SessionService manages working sessions.
type SessionService interface {
	// Create starts a session from text and its queries.
	Create(ctx context.Context, text string, queries []string, mediaType domain.MediaType) (*domain.Session, error)

	// Load reads a session file.
	Load(ctx context.Context, path string) (*domain.Session, error)

	// Save writes a session file.
	Save(ctx context.Context, path string, session *domain.Session) error

	// Select records item as the choice for query.
	Select(ctx context.Context, session *domain.Session, query string, item domain.MediaResult) error
}

// ExportService writes selections in the supported export formats.
type ExportService interface {
	// Export writes session in format to path and returns the path written.
	// An empty path derives one from the export settings.
	Export(ctx context.Context, session *domain.Session, format domain.ExportFormat, path string) (string, error)

	// Formats lists the formats with a registered exporter.
	Formats() []domain.ExportFormat
}
