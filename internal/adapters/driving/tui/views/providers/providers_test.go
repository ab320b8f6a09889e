package providers

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/vmt/internal/core/domain"
)

type mockSettings struct {
	settings domain.AppSettings
	getErr   error
	setErr   error
}

func newMockSettings() *mockSettings {
	s := domain.DefaultAppSettings()
	s.Providers[domain.ProviderPexels] = domain.ProviderSettings{APIKey: "px", Enabled: true}
	return &mockSettings{settings: s}
}

func (m *mockSettings) Get() (*domain.AppSettings, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	s := m.settings
	return &s, nil
}
func (m *mockSettings) Save(*domain.AppSettings) error { return nil }
func (m *mockSettings) Set(string, string) error       { return nil }
func (m *mockSettings) SetProviderKey(provider, apiKey string) error {
	if m.setErr != nil {
		return m.setErr
	}
	ps := m.settings.Providers[provider]
	ps.APIKey = apiKey
	m.settings.Providers[provider] = ps
	return nil
}
func (m *mockSettings) SetProviderEnabled(provider string, enabled bool) error {
	if m.setErr != nil {
		return m.setErr
	}
	ps := m.settings.Providers[provider]
	ps.Enabled = enabled
	m.settings.Providers[provider] = ps
	return nil
}
func (m *mockSettings) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }
func (m *mockSettings) ConfigPath() string              { return "/tmp/config.toml" }

type mockMedia struct{}

func (mockMedia) Search(context.Context, string, domain.MediaSearchOptions) ([]domain.MediaResult, error) {
	return nil, nil
}
func (mockMedia) SearchAll(context.Context, []string, domain.MediaSearchOptions) ([]domain.QueryResults, error) {
	return nil, nil
}
func (mockMedia) Providers() []domain.ProviderStatus {
	return []domain.ProviderStatus{
		{Name: "pexels", Enabled: true, MediaTypes: []domain.MediaType{domain.MediaPhoto, domain.MediaVideo}},
	}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
)

func loaded(t *testing.T, settings *mockSettings) *View {
	t.Helper()
	view := NewView(nil, settings, mockMedia{})
	view.SetDimensions(100, 30)
	cmd := view.Init()
	require.NotNil(t, cmd)
	view.Update(cmd())
	return view
}

func TestNewView(t *testing.T) {
	view := NewView(nil, nil, nil)

	require.NotNil(t, view)
	assert.Equal(t, domain.AllProviders(), view.names)
	assert.Contains(t, view.View(), "Loading providers...")
}

func TestView_Load(t *testing.T) {
	view := loaded(t, newMockSettings())

	out := view.View()

	require.NoError(t, view.Err())
	assert.Contains(t, out, "pexels")
	assert.Contains(t, out, "photo, video")
	assert.Contains(t, out, "[configured]")
	assert.Contains(t, out, "[needs API key]")
}

func TestView_Load_Errors(t *testing.T) {
	t.Run("no settings service", func(t *testing.T) {
		view := NewView(nil, nil, nil)
		view.Update(view.Init()())

		assert.ErrorIs(t, view.Err(), ErrNoSettingsService)
	})

	t.Run("settings read fails", func(t *testing.T) {
		settings := newMockSettings()
		settings.getErr = errors.New("bad toml")
		view := loaded(t, settings)

		assert.EqualError(t, view.Err(), "bad toml")
		assert.Contains(t, view.View(), "Error: bad toml")
	})
}

func TestView_SetKey(t *testing.T) {
	settings := newMockSettings()
	view := loaded(t, settings)
	view.Update(keyDown)

	_, cmd := view.Update(keyEnter)
	require.True(t, view.editing)
	require.NotNil(t, cmd)
	assert.Contains(t, view.View(), "API key for pixabay")

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("pb-key")})
	_, cmd = view.Update(keyEnter)
	require.NotNil(t, cmd)
	view.Update(cmd())

	assert.False(t, view.editing)
	assert.Equal(t, "pb-key", settings.settings.Providers[domain.ProviderPixabay].APIKey)
	assert.Equal(t, savedNotice, view.Notice())
	assert.NotContains(t, view.View(), "pb-key", "keys are never echoed")
}

func TestView_ToggleEnabled(t *testing.T) {
	settings := newMockSettings()
	view := loaded(t, settings)

	_, cmd := view.Update(keySpace)
	require.NotNil(t, cmd)
	view.Update(cmd())

	assert.False(t, settings.settings.Providers[domain.ProviderPexels].Enabled)
	assert.Contains(t, view.View(), "[off]")
}

func TestView_SaveError(t *testing.T) {
	settings := newMockSettings()
	settings.setErr = domain.ErrProviderUnknown
	view := loaded(t, settings)

	_, cmd := view.Update(keySpace)
	view.Update(cmd())

	assert.ErrorIs(t, view.Err(), domain.ErrProviderUnknown)
	assert.Empty(t, view.Notice())
}

func TestView_EditEscCancels(t *testing.T) {
	view := loaded(t, newMockSettings())
	view.Update(keyEnter)

	_, cmd := view.Update(keyEsc)

	assert.Nil(t, cmd)
	assert.False(t, view.editing)
}

func TestView_Esc_BackToMenu(t *testing.T) {
	view := loaded(t, newMockSettings())

	_, cmd := view.Update(keyEsc)

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_Reset(t *testing.T) {
	view := loaded(t, newMockSettings())
	view.Update(keyDown)
	view.Update(keyEnter)

	view.Reset()

	assert.Equal(t, 0, view.selected)
	assert.False(t, view.editing)
}
