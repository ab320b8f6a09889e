package driven

import (
	"context"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

// Normaliser turns a raw input file into analysable transcript text.
// Each normaliser handles specific formats (e.g., WebVTT, DOCX).
type Normaliser interface {
	// Name identifies the normaliser in logs and errors.
	Name() string

	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// SupportedExtensions returns file extensions (with dot) used when
	// the MIME type is unknown.
	SupportedExtensions() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise extracts transcript text from a raw document.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
type NormaliseResult struct {
	// Transcript holds the extracted text.
	Transcript domain.Transcript
}
