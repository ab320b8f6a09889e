package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/vmt/internal/core/domain"
)

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func session() *domain.Session {
	return &domain.Session{
		Queries:   []string{"deer forest", "misty lake", "city night"},
		Selected:  map[string]domain.MediaResult{"misty lake": {Title: "Lake"}},
		MediaType: domain.MediaVideo,
	}
}

func TestNewView(t *testing.T) {
	view := NewView(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, view)
	assert.Len(t, view.items, 6)
	assert.Len(t, view.visibleItems(), 4)
	assert.Zero(t, view.Selected())
	assert.Nil(t, view.Init())
}

func TestNewView_NilDefaults(t *testing.T) {
	view := NewView(nil, nil)

	assert.NotNil(t, view.styles)
	assert.NotNil(t, view.keymap)
}

func TestView_Shortcuts_Unique(t *testing.T) {
	seen := map[string]bool{}
	for _, item := range NewView(nil, nil).items {
		assert.NotEmpty(t, item.Shortcut, item.Label)
		assert.False(t, seen[item.Shortcut], "duplicate shortcut %s", item.Shortcut)
		seen[item.Shortcut] = true
	}
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil, nil)

	updated, cmd := view.Update(tea.WindowSizeMsg{Width: 100, Height: 50})

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.ready)
}

func TestView_Update_Navigation(t *testing.T) {
	view := NewView(nil, nil)

	view.Update(keyDown)
	assert.Equal(t, 1, view.Selected())
	for i := 0; i < 5; i++ {
		view.Update(runes("j"))
	}
	assert.Equal(t, 3, view.Selected(), "stops at last visible item")
	view.Update(keyUp)
	view.Update(runes("k"))
	assert.Equal(t, 1, view.Selected())
	for i := 0; i < 3; i++ {
		view.Update(keyUp)
	}
	assert.Zero(t, view.Selected())
}

func TestView_Update_Enter(t *testing.T) {
	tests := []struct {
		name    string
		session *domain.Session
		moves   int
		want    messages.ViewType
	}{
		{name: "analyse", want: messages.ViewAnalyze},
		{name: "providers without session", moves: 1, want: messages.ViewProviders},
		{name: "help without session", moves: 2, want: messages.ViewHelp},
		{name: "queries with session", session: session(), moves: 1, want: messages.ViewQueries},
		{name: "export with session", session: session(), moves: 2, want: messages.ViewExport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := NewView(nil, nil)
			view.SetSession(tt.session)
			for i := 0; i < tt.moves; i++ {
				view.Update(keyDown)
			}

			_, cmd := view.Update(keyEnter)

			require.NotNil(t, cmd)
			assert.Equal(t, messages.ViewChanged{View: tt.want}, cmd())
		})
	}
}

func TestView_Update_Shortcut(t *testing.T) {
	view := NewView(nil, nil)
	view.SetSession(session())

	_, cmd := view.Update(runes("e"))

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewExport}, cmd())
	assert.Equal(t, 2, view.Selected())
}

func TestView_Update_HiddenShortcutIgnored(t *testing.T) {
	view := NewView(nil, nil)

	_, cmd := view.Update(runes("u"))

	assert.Nil(t, cmd)
}

func TestView_Update_Quit(t *testing.T) {
	view := NewView(nil, nil)
	for i := 0; i < 3; i++ {
		view.Update(keyDown)
	}

	_, cmd := view.Update(keyEnter)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = view.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView_View(t *testing.T) {
	view := NewView(nil, nil)
	assert.Equal(t, "Initialising...", view.View())

	view.SetDimensions(80, 24)
	out := view.View()
	assert.Contains(t, out, "vmt")
	assert.Contains(t, out, "[a]")
	assert.Contains(t, out, "Analyse transcript")
	assert.Contains(t, out, "Providers")
	assert.NotContains(t, out, "Queries")
	assert.NotContains(t, out, "Session:")
	assert.Contains(t, out, "enter: select")

	view.SetSession(session())
	out = view.View()
	assert.Contains(t, out, "Queries (3)")
	assert.Contains(t, out, "Export")
	assert.Contains(t, out, "Session: 3 queries, 1 picked, video")
}
