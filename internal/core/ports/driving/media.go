package driving

import (
	"context"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

// MediaService searches the configured stock-media providers.
type MediaService interface {
	// Search fans query out to every enabled provider supporting the media type.
	// Provider failures become error stub results rather than an error.
	Search(ctx context.Context, query string, opts domain.MediaSearchOptions) ([]domain.MediaResult, error)

	// SearchAll runs Search for each query in order.
	SearchAll(ctx context.Context, queries []string, opts domain.MediaSearchOptions) ([]domain.QueryResults, error)

	// Providers lists registered providers and whether they are usable.
	Providers() []domain.ProviderStatus
}
