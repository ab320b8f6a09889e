package driven

import (
	"context"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

// MediaProvider searches one stock-media API.
type MediaProvider interface {
	// Name returns the provider name (e.g., "pexels").
	Name() string

	// Enabled returns true if the provider has credentials configured.
	Enabled() bool

	// Supports returns true if the provider can search this media type.
	Supports(mediaType domain.MediaType) bool

	// Search issues a read-only query and maps the response to results.
	// A disabled provider returns no results and no error.
	Search(ctx context.Context, query string, opts domain.MediaSearchOptions) ([]domain.MediaResult, error)
}
