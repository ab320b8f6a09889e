package domain

// Provider names.
const (
	ProviderPexels   = "pexels"
	ProviderPixabay  = "pixabay"
	ProviderUnsplash = "unsplash"
)

// AllProviders returns the known provider names in search order.
func AllProviders() []string {
	return []string{ProviderPexels, ProviderPixabay, ProviderUnsplash}
}

// ProviderEnvVars maps provider names to the environment variable
// holding their API key.
func ProviderEnvVars() map[string]string {
	return map[string]string{
		ProviderPexels:   "PEXELS_API_KEY",
		ProviderPixabay:  "PIXABAY_API_KEY",
		ProviderUnsplash: "UNSPLASH_ACCESS_KEY",
	}
}

// ProviderSettings holds the configuration of one media provider.
type ProviderSettings struct {
	// APIKey is the provider key. Empty disables the provider.
	APIKey string

	// Enabled allows a configured provider to be switched off.
	Enabled bool

	// BaseURL overrides the provider endpoint.
	BaseURL string
}

// IsConfigured returns true if the provider can be queried.
func (p ProviderSettings) IsConfigured() bool {
	return p.Enabled && p.APIKey != ""
}

// SearchSettings holds media search behaviour.
type SearchSettings struct {
	// PerProvider is the number of results requested from each provider.
	PerProvider int

	// MediaType is the default media type.
	MediaType MediaType

	// TimeoutSeconds is the HTTP timeout for provider calls.
	TimeoutSeconds int
}

// AnalysisSettings holds the persisted analysis defaults.
type AnalysisSettings struct {
	MaxKeywords int
	MaxQueries  int

	// LexiconFile is an optional TOML or YAML lexicon override file.
	LexiconFile string
}

// ExportSettings controls where exports are written.
type ExportSettings struct {
	Dir      string
	BaseName string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Providers map[string]ProviderSettings
	Search    SearchSettings
	Analysis  AnalysisSettings
	Export    ExportSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// Providers are enabled but have no keys until configured.
func DefaultAppSettings() AppSettings {
	providers := make(map[string]ProviderSettings, 3)
	for _, name := range AllProviders() {
		providers[name] = ProviderSettings{Enabled: true}
	}
	return AppSettings{
		Providers: providers,
		Search: SearchSettings{
			PerProvider:    DefaultSearchLimit,
			MediaType:      MediaPhoto,
			TimeoutSeconds: 15,
		},
		Analysis: AnalysisSettings{
			MaxKeywords: DefaultMaxKeywords,
			MaxQueries:  DefaultMaxQueries,
		},
		Export: ExportSettings{
			Dir:      ".",
			BaseName: "vmt_export",
		},
	}
}

// AnalysisOptions converts persisted settings to run options.
func (s AppSettings) AnalysisOptions() AnalysisOptions {
	return AnalysisOptions{
		MaxKeywords: s.Analysis.MaxKeywords,
		MaxQueries:  s.Analysis.MaxQueries,
	}
}
