package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Len(t, s.Providers, 3)
	for _, name := range AllProviders() {
		p, ok := s.Providers[name]
		assert.True(t, ok, name)
		assert.True(t, p.Enabled)
		assert.False(t, p.IsConfigured(), "no key means not configured")
	}
	assert.Equal(t, DefaultSearchLimit, s.Search.PerProvider)
	assert.Equal(t, MediaPhoto, s.Search.MediaType)
	assert.Equal(t, 15, s.Search.TimeoutSeconds)
	assert.Equal(t, "vmt_export", s.Export.BaseName)
}

func TestProviderSettings_IsConfigured(t *testing.T) {
	assert.True(t, ProviderSettings{APIKey: "k", Enabled: true}.IsConfigured())
	assert.False(t, ProviderSettings{APIKey: "k", Enabled: false}.IsConfigured())
	assert.False(t, ProviderSettings{Enabled: true}.IsConfigured())
}

func TestProviderEnvVars(t *testing.T) {
	vars := ProviderEnvVars()
	assert.Equal(t, "PEXELS_API_KEY", vars[ProviderPexels])
	assert.Equal(t, "PIXABAY_API_KEY", vars[ProviderPixabay])
	assert.Equal(t, "UNSPLASH_ACCESS_KEY", vars[ProviderUnsplash])
}

func TestAppSettings_AnalysisOptions(t *testing.T) {
	s := DefaultAppSettings()
	s.Analysis.MaxQueries = 5

	opts := s.AnalysisOptions()
	assert.Equal(t, 5, opts.MaxQueries)
	assert.Equal(t, DefaultMaxKeywords, opts.MaxKeywords)
}
