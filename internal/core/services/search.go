package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/vmt/internal/core/domain"
	"github.com/custodia-labs/vmt/internal/core/ports/driven"
	"github.com/custodia-labs/vmt/internal/core/ports/driving"
	"github.com/custodia-labs/vmt/internal/logger"
)

// Ensure MediaService implements the interface.
var _ driving.MediaService = (*MediaService)(nil)

// MediaService fans queries out to the registered providers.
type MediaService struct {
	providers []driven.MediaProvider
}

// NewMediaService creates a media service over providers.
// Provider order is kept in results.
func NewMediaService(providers ...driven.MediaProvider) *MediaService {
	return &MediaService{providers: providers}
}

// Search queries every enabled provider supporting the media type in parallel.
func (s *MediaService) Search(
	ctx context.Context, query string, opts domain.MediaSearchOptions,
) ([]domain.MediaResult, error) {
	logger.Section("Media Search")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.MediaResult{}, nil
	}
	if opts.MediaType != "" && !opts.MediaType.IsValid() {
		return nil, fmt.Errorf("search %q: %w", query, domain.ErrUnsupportedMediaType)
	}
	opts = opts.WithDefaults()

	active, err := s.selectProviders(opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("Providers: %d active, limit %d, media type %s", len(active), opts.Limit, opts.MediaType)

	perProvider := make([][]domain.MediaResult, len(active))
	var wg sync.WaitGroup
	for i, p := range active {
		wg.Add(1)
		go func(i int, p driven.MediaProvider) {
			defer wg.Done()
			results, err := p.Search(ctx, query, opts)
			if err != nil {
				logger.Warn("%s search failed: %v", p.Name(), err)
				perProvider[i] = []domain.MediaResult{errorStub(p.Name(), query, opts.MediaType, err)}
				return
			}
			logger.Debug("%s returned %d results", p.Name(), len(results))
			perProvider[i] = results
		}(i, p)
	}
	wg.Wait()

	var out []domain.MediaResult
	for _, results := range perProvider {
		for _, r := range results {
			r.Query = query
			if r.MediaType == "" {
				r.MediaType = opts.MediaType
			}
			out = append(out, r)
		}
	}
	if out == nil {
		out = []domain.MediaResult{}
	}
	return out, nil
}

// SearchAll runs Search for each query in order, skipping blanks and duplicates.
func (s *MediaService) SearchAll(
	ctx context.Context, queries []string, opts domain.MediaSearchOptions,
) ([]domain.QueryResults, error) {
	seen := make(map[string]bool, len(queries))
	out := make([]domain.QueryResults, 0, len(queries))
	for _, q := range queries {
		q = strings.TrimSpace(q)
		if q == "" || seen[q] {
			continue
		}
		seen[q] = true
		if err := ctx.Err(); err != nil {
			return out, err
		}
		results, err := s.Search(ctx, q, opts)
		if err != nil {
			return out, err
		}
		out = append(out, domain.QueryResults{Query: q, Results: results})
	}
	return out, nil
}

// Providers lists registered providers and whether they are usable.
func (s *MediaService) Providers() []domain.ProviderStatus {
	out := make([]domain.ProviderStatus, 0, len(s.providers))
	for _, p := range s.providers {
		status := domain.ProviderStatus{Name: p.Name(), Enabled: p.Enabled()}
		for _, mt := range []domain.MediaType{domain.MediaPhoto, domain.MediaVideo} {
			if p.Supports(mt) {
				status.MediaTypes = append(status.MediaTypes, mt)
			}
		}
		out = append(out, status)
	}
	return out
}

func (s *MediaService) selectProviders(opts domain.MediaSearchOptions) ([]driven.MediaProvider, error) {
	wanted := make(map[string]bool, len(opts.Providers))
	for _, name := range opts.Providers {
		wanted[strings.ToLower(name)] = false
	}
	var active []driven.MediaProvider
	for _, p := range s.providers {
		if len(wanted) > 0 {
			if _, ok := wanted[p.Name()]; !ok {
				continue
			}
			wanted[p.Name()] = true
		}
		if !p.Enabled() {
			logger.Debug("%s skipped: not configured", p.Name())
			continue
		}
		if !p.Supports(opts.MediaType) {
			logger.Debug("%s skipped: no %s support", p.Name(), opts.MediaType)
			continue
		}
		active = append(active, p)
	}
	for name, found := range wanted {
		if !found {
			return nil, fmt.Errorf("%w: %s", domain.ErrProviderUnknown, name)
		}
	}
	return active, nil
}

// errorStub stands in for a provider that failed so the caller still sees it.
func errorStub(provider, query string, mediaType domain.MediaType, err error) domain.MediaResult {
	name := provider
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return domain.MediaResult{
		Query:     query,
		Title:     fmt.Sprintf("[%s error: %v]", name, err),
		Provider:  provider,
		URL:       "#",
		MediaType: mediaType,
		Extra:     map[string]string{"error": err.Error()},
		Error:     true,
	}
}
