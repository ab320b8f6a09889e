// Package unsplash implements the Unsplash photo search API.
package unsplash

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"github.com/custodia-labs/vmt/internal/core/domain"
	"github.com/custodia-labs/vmt/internal/core/ports/driven"
	"github.com/custodia-labs/vmt/internal/providers/httpapi"
)

// Verify interface compliance.
var _ driven.MediaProvider = (*Provider)(nil)

const (
	// DefaultBaseURL is the Unsplash API root.
	DefaultBaseURL = "https://api.unsplash.com"

	// License is the licence text attached to every result.
	License = "Unsplash License (attribution required)"

	maxPerPage = 30
)

// Config holds configuration for the Unsplash provider.
type Config struct {
	// AccessKey is the application access key.
	AccessKey  string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Provider searches Unsplash. Only photos are available.
type Provider struct {
	accessKey string
	baseURL   string
	client    *httpapi.Client
}

// New creates an Unsplash provider.
func New(cfg Config) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Provider{
		accessKey: cfg.AccessKey,
		baseURL:   cfg.BaseURL,
		client:    httpapi.New(domain.ProviderUnsplash, cfg.HTTPClient, cfg.Timeout),
	}
}

// Name returns "unsplash".
func (p *Provider) Name() string { return domain.ProviderUnsplash }

// Enabled returns true when an access key is set.
func (p *Provider) Enabled() bool { return p.accessKey != "" }

// Supports returns true for photos only.
func (p *Provider) Supports(mt domain.MediaType) bool { return mt == domain.MediaPhoto }

// Search queries /search/photos.
func (p *Provider) Search(
	ctx context.Context, query string, opts domain.MediaSearchOptions,
) ([]domain.MediaResult, error) {
	if !p.Enabled() {
		return nil, nil
	}
	opts = opts.WithDefaults()
	if !p.Supports(opts.MediaType) {
		return nil, fmt.Errorf("unsplash %s search: %w", opts.MediaType, domain.ErrUnsupportedMediaType)
	}

	params := url.Values{
		"query":    {query},
		"per_page": {strconv.Itoa(min(opts.Limit, maxPerPage))},
	}
	headers := map[string]string{
		"Authorization":  "Client-ID " + p.accessKey,
		"Accept-Version": "v1",
	}
	body, err := p.client.Get(ctx, p.baseURL, "/search/photos", params, headers)
	if err != nil {
		return nil, fmt.Errorf("unsplash search: %w", err)
	}

	var out []domain.MediaResult
	body.Get("results").ForEach(func(_, item gjson.Result) bool {
		id := item.Get("id").String()
		title := httpapi.FirstString(item, "alt_description", "description")
		if title == "" {
			title = "Unsplash " + id
		}
		out = append(out, domain.MediaResult{
			Title:     title,
			Provider:  domain.ProviderUnsplash,
			URL:       item.Get("links.html").String(),
			Thumb:     httpapi.FirstString(item, "urls.small", "urls.thumb"),
			Author:    item.Get("user.name").String(),
			License:   License,
			MediaType: domain.MediaPhoto,
			Extra:     map[string]string{"id": id},
		})
		return true
	})
	return out, nil
}
