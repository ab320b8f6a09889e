package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/vmt/internal/core/domain"
	"github.com/custodia-labs/vmt/internal/core/ports/driving"
)

// MockAnalysisService implements driving.AnalysisService for testing.
type MockAnalysisService struct {
	AnalyzeFunc func(ctx context.Context, text string, opts domain.AnalysisOptions) (*domain.Analysis, error)
	LastOpts    domain.AnalysisOptions
}

func (m *MockAnalysisService) Analyze(
	ctx context.Context, text string, opts domain.AnalysisOptions,
) (*domain.Analysis, error) {
	m.LastOpts = opts
	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, text, opts)
	}
	return &domain.Analysis{}, nil
}

func (m *MockAnalysisService) AnalyzeBatch(
	context.Context, string, domain.AnalysisOptions,
) ([]domain.Query, error) {
	return nil, nil
}

func (m *MockAnalysisService) Lexicons(context.Context, domain.AnalysisOptions) (*domain.LexiconFile, error) {
	return &domain.LexiconFile{}, nil
}

// MockMediaService implements driving.MediaService for testing.
type MockMediaService struct {
	SearchFunc func(ctx context.Context, query string, opts domain.MediaSearchOptions) ([]domain.MediaResult, error)
	LastOpts   domain.MediaSearchOptions
}

func (m *MockMediaService) Search(
	ctx context.Context, query string, opts domain.MediaSearchOptions,
) ([]domain.MediaResult, error) {
	m.LastOpts = opts
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, opts)
	}
	return nil, nil
}

func (m *MockMediaService) SearchAll(
	context.Context, []string, domain.MediaSearchOptions,
) ([]domain.QueryResults, error) {
	return nil, nil
}

func (m *MockMediaService) Providers() []domain.ProviderStatus { return nil }

// MockSessionService implements driving.SessionService for testing.
type MockSessionService struct {
	SelectErr error
	Selected  int
}

func (m *MockSessionService) Create(
	_ context.Context, text string, queries []string, mediaType domain.MediaType,
) (*domain.Session, error) {
	return &domain.Session{
		ID: "test", Text: text, Queries: queries, MediaType: mediaType,
		Selected: map[string]domain.MediaResult{},
	}, nil
}

func (m *MockSessionService) Load(context.Context, string) (*domain.Session, error) {
	return nil, domain.ErrNotFound
}

func (m *MockSessionService) Save(context.Context, string, *domain.Session) error { return nil }

func (m *MockSessionService) Select(
	_ context.Context, session *domain.Session, query string, item domain.MediaResult,
) error {
	if m.SelectErr != nil {
		return m.SelectErr
	}
	m.Selected++
	session.Select(query, item)
	return nil
}

// MockSettingsService implements driving.SettingsService for testing.
type MockSettingsService struct {
	Settings domain.AppSettings
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.Settings
	return &s, nil
}
func (m *MockSettingsService) Save(*domain.AppSettings) error        { return nil }
func (m *MockSettingsService) Set(string, string) error              { return nil }
func (m *MockSettingsService) SetProviderKey(string, string) error   { return nil }
func (m *MockSettingsService) SetProviderEnabled(string, bool) error { return nil }
func (m *MockSettingsService) GetDefaults() domain.AppSettings       { return domain.DefaultAppSettings() }
func (m *MockSettingsService) ConfigPath() string                    { return "config.toml" }

var (
	_ driving.AnalysisService = (*MockAnalysisService)(nil)
	_ driving.MediaService    = (*MockMediaService)(nil)
	_ driving.SessionService  = (*MockSessionService)(nil)
	_ driving.SettingsService = (*MockSettingsService)(nil)
)

func TestNewPorts(t *testing.T) {
	analysis := &MockAnalysisService{}
	media := &MockMediaService{}

	ports := NewPorts(analysis, media)

	require.NotNil(t, ports)
	assert.Equal(t, analysis, ports.Analysis)
	assert.Equal(t, media, ports.Media)
	assert.Nil(t, ports.Session)
	assert.NoError(t, ports.Validate())
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name  string
		ports *Ports
		want  error
	}{
		{name: "nil ports", ports: nil, want: ErrMissingAnalysisService},
		{name: "missing analysis", ports: &Ports{Media: &MockMediaService{}}, want: ErrMissingAnalysisService},
		{name: "missing media", ports: &Ports{Analysis: &MockAnalysisService{}}, want: ErrMissingMediaService},
		{
			name: "optional ports unset",
			ports: &Ports{Analysis: &MockAnalysisService{}, Media: &MockMediaService{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
