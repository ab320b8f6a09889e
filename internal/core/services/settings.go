package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/custodia-labs/vmt/internal/core/domain"
	"github.com/custodia-labs/vmt/internal/core/ports/driven"
	"github.com/custodia-labs/vmt/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyProviderFmt       = "providers.%s.%s"
	keySearchPerProvider = "search.per_provider"
	keySearchMediaType   = "search.media_type"
	keySearchTimeout     = "search.timeout_seconds"
	keyMaxKeywords       = "analysis.max_keywords"
	keyMaxQueries        = "analysis.max_queries"
	keyLexiconFile       = "analysis.lexicon_file"
	keyExportDir         = "export.dir"
	keyExportBaseName    = "export.base_name"
)

func providerKey(provider, field string) string {
	return fmt.Sprintf(keyProviderFmt, provider, field)
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
// Provider API keys in the environment override stored keys.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()
	envVars := domain.ProviderEnvVars()

	providers := make(map[string]domain.ProviderSettings, len(defaults.Providers))
	for _, name := range domain.AllProviders() {
		key := s.configStore.GetString(providerKey(name, "api_key"))
		if env := s.getenv(envVars[name]); env != "" {
			key = env
		}
		providers[name] = domain.ProviderSettings{
			APIKey:  key,
			Enabled: s.getBool(providerKey(name, "enabled"), defaults.Providers[name].Enabled),
			BaseURL: s.configStore.GetString(providerKey(name, "base_url")),
		}
	}

	settings := &domain.AppSettings{
		Providers: providers,
		Search: domain.SearchSettings{
			PerProvider:    s.getInt(keySearchPerProvider, defaults.Search.PerProvider),
			MediaType:      s.getMediaType(defaults.Search.MediaType),
			TimeoutSeconds: s.getInt(keySearchTimeout, defaults.Search.TimeoutSeconds),
		},
		Analysis: domain.AnalysisSettings{
			MaxKeywords: s.getInt(keyMaxKeywords, defaults.Analysis.MaxKeywords),
			MaxQueries:  s.getInt(keyMaxQueries, defaults.Analysis.MaxQueries),
			LexiconFile: s.configStore.GetString(keyLexiconFile),
		},
		Export: domain.ExportSettings{
			Dir:      s.getString(keyExportDir, defaults.Export.Dir),
			BaseName: s.getString(keyExportBaseName, defaults.Export.BaseName),
		},
	}

	return settings, nil
}

// Save persists application settings.
// Keys that came from the environment are not written back.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	envVars := domain.ProviderEnvVars()
	for _, name := range domain.AllProviders() {
		p, ok := settings.Providers[name]
		if !ok {
			continue
		}
		if p.APIKey != "" && p.APIKey != s.getenv(envVars[name]) {
			if err := s.configStore.Set(providerKey(name, "api_key"), p.APIKey); err != nil {
				return fmt.Errorf("save %s api_key: %w", name, err)
			}
		}
		if err := s.configStore.Set(providerKey(name, "enabled"), p.Enabled); err != nil {
			return fmt.Errorf("save %s enabled: %w", name, err)
		}
		if p.BaseURL != "" {
			if err := s.configStore.Set(providerKey(name, "base_url"), p.BaseURL); err != nil {
				return fmt.Errorf("save %s base_url: %w", name, err)
			}
		}
	}

	values := []struct {
		key   string
		value any
	}{
		{keySearchPerProvider, settings.Search.PerProvider},
		{keySearchMediaType, settings.Search.MediaType.String()},
		{keySearchTimeout, settings.Search.TimeoutSeconds},
		{keyMaxKeywords, settings.Analysis.MaxKeywords},
		{keyMaxQueries, settings.Analysis.MaxQueries},
		{keyLexiconFile, settings.Analysis.LexiconFile},
		{keyExportDir, settings.Export.Dir},
		{keyExportBaseName, settings.Export.BaseName},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// Set updates a single setting by dotted key.
// Integer and boolean settings are parsed from value.
func (s *SettingsService) Set(key, value string) error {
	switch key {
	case keySearchPerProvider, keySearchTimeout, keyMaxKeywords, keyMaxQueries:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, n)
	case keySearchMediaType:
		if _, err := domain.ParseMediaType(value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		return s.configStore.Set(key, value)
	case keyLexiconFile, keyExportDir, keyExportBaseName:
		return s.setString(key, value)
	}

	parts := strings.Split(key, ".")
	if len(parts) == 3 && parts[0] == "providers" {
		switch parts[2] {
		case "api_key":
			return s.SetProviderKey(parts[1], value)
		case "enabled":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
			}
			return s.SetProviderEnabled(parts[1], b)
		case "base_url":
			if err := checkProvider(parts[1]); err != nil {
				return err
			}
			return s.setString(key, value)
		}
	}
	return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
}

// SetProviderKey stores the API key for a provider. An empty key removes
// the stored one.
func (s *SettingsService) SetProviderKey(provider, apiKey string) error {
	if err := checkProvider(provider); err != nil {
		return err
	}
	return s.setString(providerKey(provider, "api_key"), apiKey)
}

// SetProviderEnabled switches a provider on or off.
func (s *SettingsService) SetProviderEnabled(provider string, enabled bool) error {
	if err := checkProvider(provider); err != nil {
		return err
	}
	return s.configStore.Set(providerKey(provider, "enabled"), enabled)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ConfigPath returns the configuration file path.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

func checkProvider(name string) error {
	for _, p := range domain.AllProviders() {
		if p == name {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrProviderUnknown, name)
}

// setString stores value, or drops key when value is blank so the default
// applies again.
func (s *SettingsService) setString(key, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return s.configStore.Delete(key)
	}
	return s.configStore.Set(key, value)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getMediaType(defaultVal domain.MediaType) domain.MediaType {
	val := s.configStore.GetString(keySearchMediaType)
	if val == "" {
		return defaultVal
	}
	mt := domain.MediaType(val)
	if !mt.IsValid() {
		return defaultVal
	}
	return mt
}
