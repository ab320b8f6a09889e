// Package providers provides the media provider configuration view for the TUI.
package providers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/vmt/internal/core/domain"
	"github.com/custodia-labs/vmt/internal/core/ports/driving"
)

// ErrNoSettingsService is reported when settings cannot be read.
var ErrNoSettingsService = errors.New("settings service not available")

// savedNotice is shown after a change is written to the config file.
const savedNotice = "Saved. Restart vmt to search with the new settings."

// View lists providers with their key status and edits their settings.
type View struct {
	styles   *styles.Styles
	settings driving.SettingsService
	media    driving.MediaService

	current  *domain.AppSettings
	statuses map[string]domain.ProviderStatus
	names    []string
	err      error
	notice   string
	saving   bool

	selected int
	editing  bool
	keyInput textinput.Model

	width  int
	height int
	ready  bool
}

// NewView creates the providers view. media may be nil.
func NewView(s *styles.Styles, settings driving.SettingsService, media driving.MediaService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	keyInput := textinput.New()
	keyInput.Placeholder = "Enter API key"
	keyInput.EchoMode = textinput.EchoPassword
	keyInput.CharLimit = 256

	return &View{
		styles:   s,
		settings: settings,
		media:    media,
		statuses: map[string]domain.ProviderStatus{},
		names:    domain.AllProviders(),
		keyInput: keyInput,
	}
}

// Init loads provider settings.
func (v *View) Init() tea.Cmd {
	return v.load()
}

// load returns a command that reads settings and provider status.
func (v *View) load() tea.Cmd {
	return func() tea.Msg {
		var statuses []domain.ProviderStatus
		if v.media != nil {
			statuses = v.media.Providers()
		}
		if v.settings == nil {
			return messages.ProvidersLoaded{Providers: statuses, Err: ErrNoSettingsService}
		}
		settings, err := v.settings.Get()
		return messages.ProvidersLoaded{Providers: statuses, Settings: settings, Err: err}
	}
}

// Update handles messages for the providers view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ProvidersLoaded:
		v.err = msg.Err
		if msg.Settings != nil {
			v.current = msg.Settings
		}
		v.statuses = map[string]domain.ProviderStatus{}
		for _, p := range msg.Providers {
			v.statuses[p.Name] = p
		}
		if v.saving && msg.Err == nil {
			v.notice = savedNotice
		}
		v.saving = false
		return v, nil

	case tea.KeyMsg:
		if v.editing {
			return v.handleKeyInput(msg)
		}
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.names)-1 {
			v.selected++
		}
	case "enter":
		if v.current != nil {
			v.editing = true
			v.keyInput.SetValue("")
			return v, v.keyInput.Focus()
		}
	case " ":
		if v.current != nil {
			name := v.names[v.selected]
			enabled := !v.current.Providers[name].Enabled
			return v, v.save(func() error { return v.settings.SetProviderEnabled(name, enabled) })
		}
	}
	return v, nil
}

func (v *View) handleKeyInput(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.editing = false
		v.keyInput.Blur()
		return v, nil
	case "enter":
		name, key := v.names[v.selected], v.keyInput.Value()
		v.editing = false
		v.keyInput.Blur()
		return v, v.save(func() error { return v.settings.SetProviderKey(name, key) })
	}
	var cmd tea.Cmd
	v.keyInput, cmd = v.keyInput.Update(msg)
	return v, cmd
}

// save applies change and reloads, reporting a failed write as the load error.
func (v *View) save(change func() error) tea.Cmd {
	v.saving = true
	v.notice = ""
	load := v.load()
	return func() tea.Msg {
		if err := change(); err != nil {
			return messages.ProvidersLoaded{Err: err}
		}
		return load()
	}
}

// View renders the providers view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Providers"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}
	if v.current == nil {
		b.WriteString(v.styles.Muted.Render("Loading providers..."))
		return b.String()
	}

	for i, name := range v.names {
		b.WriteString(v.renderProvider(i, name))
		b.WriteString("\n")
	}

	if v.editing {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("API key for %s: %s\n", v.names[v.selected], v.keyInput.View()))
	}
	if v.notice != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderProvider(i int, name string) string {
	indicator := "  "
	if i == v.selected {
		indicator = "> "
	}
	ps := v.current.Providers[name]

	var state string
	switch {
	case !ps.Enabled:
		state = v.styles.Muted.Render("[off]")
	case ps.IsConfigured():
		state = v.styles.Success.Render("[configured]")
	default:
		state = v.styles.Warning.Render("[needs API key]")
	}

	types := "photo"
	if st, ok := v.statuses[name]; ok && len(st.MediaTypes) > 0 {
		parts := make([]string, len(st.MediaTypes))
		for j, mt := range st.MediaTypes {
			parts[j] = mt.String()
		}
		types = strings.Join(parts, ", ")
	}

	line := fmt.Sprintf("%s%-10s %s", indicator, name, types)
	if i == v.selected {
		return v.styles.Selected.Render(line) + " " + state
	}
	return v.styles.Normal.Render(line) + " " + state
}

func (v *View) renderHelp() string {
	if v.editing {
		return v.styles.Help.Render("[enter] save  [esc] cancel")
	}
	return v.styles.Help.Render("[j/k] navigate  [enter] set key  [space] on/off  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Reset returns the view to the provider list.
func (v *View) Reset() {
	v.selected = 0
	v.editing = false
	v.err = nil
	v.notice = ""
	v.keyInput.SetValue("")
	v.keyInput.Blur()
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Notice returns the last success message.
func (v *View) Notice() string {
	return v.notice
}
