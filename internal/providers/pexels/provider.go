// Package pexels implements the Pexels photo and video search API.
package pexels

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
	// DefaultBaseURL is the Pexels API root.
	DefaultBaseURL = "https://api.pexels.com"

	// License is the licence text attached to every result.
	License = "Free to use (see Pexels license)"
)

// Config holds configuration for the Pexels provider.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration

	// HTTPClient replaces the default client. Used by tests.
	HTTPClient *http.Client
}

// Provider searches Pexels.
type Provider struct {
	apiKey  string
	baseURL string
	client  *httpapi.Client
}

// New creates a Pexels provider.
func New(cfg Config) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Provider{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		client:  httpapi.New(domain.ProviderPexels, cfg.HTTPClient, cfg.Timeout),
	}
}

// Name returns "pexels".
func (p *Provider) Name() string { return domain.ProviderPexels }

// Enabled returns true when an API key is set.
func (p *Provider) Enabled() bool { return p.apiKey != "" }

// Supports returns true for photos and videos.
func (p *Provider) Supports(mt domain.MediaType) bool { return mt.IsValid() }

// Search queries the photo or video endpoint.
func (p *Provider) Search(
	ctx context.Context, query string, opts domain.MediaSearchOptions,
) ([]domain.MediaResult, error) {
	if !p.Enabled() {
		return nil, nil
	}
	opts = opts.WithDefaults()

	path := "/v1/search"
	if opts.MediaType == domain.MediaVideo {
		path = "/videos/search"
	}
	params := url.Values{
		"query":    {query},
		"per_page": {strconv.Itoa(opts.Limit)},
	}
	body, err := p.client.Get(ctx, p.baseURL, path, params, map[string]string{"Authorization": p.apiKey})
	if err != nil {
		return nil, fmt.Errorf("pexels search: %w", err)
	}

	if opts.MediaType == domain.MediaVideo {
		return mapVideos(body), nil
	}
	return mapPhotos(body), nil
}

func mapPhotos(body gjson.Result) []domain.MediaResult {
	var out []domain.MediaResult
	body.Get("photos").ForEach(func(_, item gjson.Result) bool {
		id := item.Get("id").String()
		title := item.Get("alt").String()
		if title == "" {
			title = "Pexels " + id
		}
		out = append(out, domain.MediaResult{
			Title:     title,
			Provider:  domain.ProviderPexels,
			URL:       item.Get("url").String(),
			Thumb:     httpapi.FirstString(item, "src.medium", "src.small"),
			Author:    item.Get("photographer").String(),
			License:   License,
			MediaType: domain.MediaPhoto,
			Extra:     map[string]string{"id": id},
		})
		return true
	})
	return out
}

func mapVideos(body gjson.Result) []domain.MediaResult {
	var out []domain.MediaResult
	body.Get("videos").ForEach(func(_, item gjson.Result) bool {
		id := item.Get("id").String()
		pageURL := item.Get("url").String()
		title := httpapi.SlugTitle(pageURL)
		if title == "" {
			title = "Pexels " + id
		}
		var files []domain.VideoFile
		item.Get("video_files").ForEach(func(_, f gjson.Result) bool {
			files = append(files, domain.VideoFile{
				URL:     f.Get("link").String(),
				Width:   int(f.Get("width").Int()),
				Height:  int(f.Get("height").Int()),
				Quality: f.Get("quality").String(),
			})
			return true
		})
		out = append(out, domain.MediaResult{
			Title:      title,
			Provider:   domain.ProviderPexels,
			URL:        pageURL,
			Thumb:      item.Get("image").String(),
			Author:     item.Get("user.name").String(),
			License:    License,
			MediaType:  domain.MediaVideo,
			Duration:   item.Get("duration").Float(),
			VideoFiles: files,
			Extra:      map[string]string{"id": id},
		})
		return true
	})
	return out
}
