package driven

import (
	"context"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

// Exporter writes a session's selections to a file in one format.
type Exporter interface {
	// Format returns the export format this exporter writes.
	Format() domain.ExportFormat

	// Export writes the session to path, replacing any existing file.
	Export(ctx context.Context, path string, session *domain.Session) error
}
