package driven

import (
	"context"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

// LexiconLoader reads lexicon override files.
type LexiconLoader interface {
	// Load parses the file at path. The format is chosen by extension.
	Load(ctx context.Context, path string) (*domain.LexiconFile, error)

	// Write stores lf at path in the format chosen by extension.
	Write(ctx context.Context, path string, lf *domain.LexiconFile) error
}
