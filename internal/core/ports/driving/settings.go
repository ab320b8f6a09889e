package driving

import "github.com/custodia-labs/vmt/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, with environment
	// variables overriding provider keys.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates a single setting by dotted key (e.g., "search.per_provider").
	Set(key, value string) error

	// SetProviderKey stores the API key for a provider.
	SetProviderKey(provider, apiKey string) error

	// SetProviderEnabled switches a provider on or off.
	SetProviderEnabled(provider string, enabled bool) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ConfigPath returns the configuration file path.
	ConfigPath() string
}
