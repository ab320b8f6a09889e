package pixabay

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

func TestProvider_Search_Photos(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "pb-key", q.Get("key"))
		assert.Equal(t, "golden light", q.Get("q"))
		assert.Equal(t, "photo", q.Get("image_type"))
		assert.Equal(t, "3", q.Get("per_page"))
		_, _ = w.Write([]byte(`{"hits":[
			{"id": 1, "tags": "sun, light", "pageURL": "https://pixabay.com/p/1", "previewURL": "https://cdn/1.jpg", "user": "dora"},
			{"id": 2, "tags": "", "pageURL": "https://pixabay.com/p/2", "webformatURL": "https://cdn/2w.jpg", "user": "eli"},
			{"id": 3, "tags": "extra", "pageURL": "https://pixabay.com/p/3"}
		]}`))
	}))
	defer server.Close()
	p := New(Config{APIKey: "pb-key", BaseURL: server.URL})

	results, err := p.Search(context.Background(), "golden light", domain.MediaSearchOptions{Limit: 2})

	require.NoError(t, err)
	require.Len(t, results, 2, "trimmed to the requested limit")
	assert.Equal(t, "sun, light", results[0].Title)
	assert.Equal(t, "https://cdn/1.jpg", results[0].Thumb)
	assert.Equal(t, "dora", results[0].Author)
	assert.Equal(t, License, results[0].License)
	assert.Equal(t, "Pixabay 2", results[1].Title)
	assert.Equal(t, "https://cdn/2w.jpg", results[1].Thumb)
}

func TestProvider_Search_Videos(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/videos/", r.URL.Path)
		assert.Empty(t, r.URL.Query().Get("image_type"))
		_, _ = w.Write([]byte(`{"hits":[{"id": 9, "tags": "waves", "pageURL": "https://pixabay.com/v/9",
			"duration": 30, "user": "fay",
			"videos": {"large": {"url": "https://cdn/9-l.mp4", "width": 1920, "height": 1080},
			           "medium": {"url": "https://cdn/9-m.mp4", "width": 1280, "height": 720, "thumbnail": "https://cdn/9.jpg"}}}]}`))
	}))
	defer server.Close()
	p := New(Config{APIKey: "pb-key", BaseURL: server.URL})

	results, err := p.Search(context.Background(), "waves", domain.MediaSearchOptions{MediaType: domain.MediaVideo})

	require.NoError(t, err)
	require.Len(t, results, 1)
	v := results[0]
	assert.Equal(t, domain.MediaVideo, v.MediaType)
	assert.Equal(t, "https://cdn/9.jpg", v.Thumb)
	assert.InDelta(t, 30.0, v.Duration, 0.001)
	require.Len(t, v.VideoFiles, 2)
	assert.Equal(t, "large", v.VideoFiles[0].Quality)
	assert.Equal(t, "medium", v.VideoFiles[1].Quality)
}

func TestProvider_Search_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("API rate limit exceeded"))
	}))
	defer server.Close()
	p := New(Config{APIKey: "pb-key", BaseURL: server.URL})

	_, err := p.Search(context.Background(), "sea", domain.MediaSearchOptions{})

	require.Error(t, err)
	assert.True(t, domain.IsRateLimited(err))
	assert.NotContains(t, err.Error(), "pb-key")
}

func TestProvider_Disabled(t *testing.T) {
	p := New(Config{})

	results, err := p.Search(context.Background(), "sea", domain.MediaSearchOptions{})

	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, "pixabay", p.Name())
}
