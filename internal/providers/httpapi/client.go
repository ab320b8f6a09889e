// Package httpapi holds the HTTP plumbing shared by the provider adapters.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

// DefaultTimeout is the request timeout used when none is configured.
const DefaultTimeout = 15 * time.Second

// maxBodySize bounds how much of a response is read.
const maxBodySize = 8 << 20

// Client performs read-only GET requests against one provider API.
type Client struct {
	provider string
	http     *http.Client
}

// New creates a client for provider. A nil httpClient gets one with timeout.
func New(provider string, httpClient *http.Client, timeout time.Duration) *Client {
	if httpClient == nil {
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{provider: provider, http: httpClient}
}

// Get requests base+path with params and headers and returns the parsed body.
// Non-2xx responses become *domain.APIError.
func (c *Client) Get(
	ctx context.Context, base, path string, params url.Values, headers map[string]string,
) (gjson.Result, error) {
	endpoint := strings.TrimRight(base, "/") + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			uerr.URL = redact(uerr.URL)
		}
		return gjson.Result{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return gjson.Result{}, &domain.APIError{
			Provider:   c.provider,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
			URL:        redact(endpoint),
		}
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("decode response: invalid JSON from %s", c.provider)
	}
	return gjson.ParseBytes(body), nil
}

// errorMessage pulls a human-readable message out of an error body.
func errorMessage(body []byte) string {
	if gjson.ValidBytes(body) {
		for _, path := range []string{"error", "errors.0", "message", "code"} {
			if v := gjson.GetBytes(body, path); v.Exists() && v.String() != "" {
				return v.String()
			}
		}
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}

// redact removes the key query parameter so API keys never reach logs.
func redact(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil {
		return endpoint
	}
	q := u.Query()
	if q.Has("key") {
		q.Set("key", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// FirstString returns the first non-empty string among paths of r.
func FirstString(r gjson.Result, paths ...string) string {
	for _, p := range paths {
		if s := r.Get(p).String(); s != "" {
			return s
		}
	}
	return ""
}

// SlugTitle turns the last path segment of a page URL into a title,
// dropping a trailing numeric id: ".../video/deer-in-forest-1234/" -> "deer in forest".
func SlugTitle(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	words := strings.Split(segs[len(segs)-1], "-")
	if n := len(words); n > 1 && isDigits(words[n-1]) {
		words = words[:n-1]
	}
	if len(words) == 1 && isDigits(words[0]) {
		return ""
	}
	return strings.TrimSpace(strings.Join(words, " "))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
