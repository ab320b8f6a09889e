// Package pixabay implements the Pixabay image and video search API.
package pixabay

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
	// DefaultBaseURL is the Pixabay API root.
	DefaultBaseURL = "https://pixabay.com"

	// License is the licence text attached to every result.
	License = "Pixabay License (see site)"

	// Pixabay rejects per_page outside 3..200.
	minPerPage = 3
	maxPerPage = 200
)

// Config holds configuration for the Pixabay provider.
type Config struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Provider searches Pixabay.
type Provider struct {
	apiKey  string
	baseURL string
	client  *httpapi.Client
}

// New creates a Pixabay provider.
func New(cfg Config) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Provider{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		client:  httpapi.New(domain.ProviderPixabay, cfg.HTTPClient, cfg.Timeout),
	}
}

// Name returns "pixabay".
func (p *Provider) Name() string { return domain.ProviderPixabay }

// Enabled returns true when an API key is set.
func (p *Provider) Enabled() bool { return p.apiKey != "" }

// Supports returns true for photos and videos.
func (p *Provider) Supports(mt domain.MediaType) bool { return mt.IsValid() }

// Search queries the image or video endpoint. Results beyond the
// requested limit are trimmed since Pixabay enforces a minimum page size.
func (p *Provider) Search(
	ctx context.Context, query string, opts domain.MediaSearchOptions,
) ([]domain.MediaResult, error) {
	if !p.Enabled() {
		return nil, nil
	}
	opts = opts.WithDefaults()

	perPage := min(max(opts.Limit, minPerPage), maxPerPage)
	params := url.Values{
		"key":      {p.apiKey},
		"q":        {query},
		"per_page": {strconv.Itoa(perPage)},
	}
	path := "/api/"
	if opts.MediaType == domain.MediaVideo {
		path = "/api/videos/"
	} else {
		params.Set("image_type", "photo")
	}

	body, err := p.client.Get(ctx, p.baseURL, path, params, nil)
	if err != nil {
		return nil, fmt.Errorf("pixabay search: %w", err)
	}

	var out []domain.MediaResult
	body.Get("hits").ForEach(func(_, item gjson.Result) bool {
		if len(out) >= opts.Limit {
			return false
		}
		if opts.MediaType == domain.MediaVideo {
			out = append(out, mapVideo(item))
		} else {
			out = append(out, mapPhoto(item))
		}
		return true
	})
	return out, nil
}

func mapPhoto(item gjson.Result) domain.MediaResult {
	id := item.Get("id").String()
	return domain.MediaResult{
		Title:     title(item, id),
		Provider:  domain.ProviderPixabay,
		URL:       item.Get("pageURL").String(),
		Thumb:     httpapi.FirstString(item, "previewURL", "webformatURL"),
		Author:    item.Get("user").String(),
		License:   License,
		MediaType: domain.MediaPhoto,
		Extra:     map[string]string{"id": id},
	}
}

func mapVideo(item gjson.Result) domain.MediaResult {
	id := item.Get("id").String()
	var files []domain.VideoFile
	for _, quality := range []string{"large", "medium", "small", "tiny"} {
		f := item.Get("videos." + quality)
		if link := f.Get("url").String(); link != "" {
			files = append(files, domain.VideoFile{
				URL:     link,
				Width:   int(f.Get("width").Int()),
				Height:  int(f.Get("height").Int()),
				Quality: quality,
			})
		}
	}
	return domain.MediaResult{
		Title:      title(item, id),
		Provider:   domain.ProviderPixabay,
		URL:        item.Get("pageURL").String(),
		Thumb:      httpapi.FirstString(item, "videos.medium.thumbnail", "videos.small.thumbnail", "videos.tiny.thumbnail"),
		Author:     item.Get("user").String(),
		License:    License,
		MediaType:  domain.MediaVideo,
		Duration:   item.Get("duration").Float(),
		VideoFiles: files,
		Extra:      map[string]string{"id": id},
	}
}

func title(item gjson.Result, id string) string {
	if tags := item.Get("tags").String(); tags != "" {
		return tags
	}
	return "Pixabay " + id
}
