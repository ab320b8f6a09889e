// Package export provides the export view for the TUI.
package export

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/vmt/internal/core/domain"
	"github.com/custodia-labs/vmt/internal/core/ports/driving"
)

// DefaultSessionFile is offered as the session path.
const DefaultSessionFile = "session.vmt.json"

var (
	// ErrNoSession is reported when there is nothing to export.
	ErrNoSession = errors.New("no session to export")

	// ErrNoSessionService is reported when sessions cannot be saved.
	ErrNoSessionService = errors.New("session service not available")
)

// View writes the session in an export format or saves it as a session file.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	pathEdit *input.TextInput

	exports  driving.ExportService
	sessions driving.SessionService
	ctx      context.Context

	session *domain.Session
	formats []domain.ExportFormat

	selected int
	editing  bool
	busy     bool
	notice   string
	err      error
	width    int
	height   int
	ready    bool
}

// NewView creates the export view. Either service may be nil.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	exports driving.ExportService,
	sessions driving.SessionService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	var formats []domain.ExportFormat
	if exports != nil {
		formats = exports.Formats()
	}
	pathEdit := input.NewTextInput(s, "Session file", DefaultSessionFile)
	pathEdit.SetValue(DefaultSessionFile)

	return &View{
		styles:   s,
		keymap:   km,
		pathEdit: pathEdit,
		exports:  exports,
		sessions: sessions,
		ctx:      context.Background(),
		formats:  formats,
		width:    80,
		height:   24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetSession sets the session to export and clears old notices.
func (v *View) SetSession(session *domain.Session) {
	v.session = session
	v.notice = ""
	v.err = nil
	v.editing = false
	v.pathEdit.Blur()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the export view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ExportCompleted:
		v.busy = false
		v.err = msg.Err
		if msg.Err == nil {
			v.notice = fmt.Sprintf("Wrote %s to %s", msg.Format, msg.Path)
		}
		return v, nil

	case messages.SessionSaved:
		v.busy = false
		v.err = msg.Err
		if msg.Err == nil {
			v.notice = "Saved session to " + msg.Path
		}
		return v, nil

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKey(msg)
		}
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case key == "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewQueries}
		}
	case keymap.Matches(key, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(key, v.keymap.Down):
		if v.selected < len(v.formats) {
			v.selected++
		}
	case keymap.Matches(key, v.keymap.Select):
		if v.busy {
			return v, nil
		}
		if v.selected == len(v.formats) {
			v.editing = true
			return v, v.pathEdit.Focus()
		}
		return v, v.startExport(v.formats[v.selected])
	}
	return v, nil
}

func (v *View) handleEditKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEsc:
		v.editing = false
		v.pathEdit.Blur()
		return v, nil
	case tea.KeyEnter:
		path := strings.TrimSpace(v.pathEdit.Value())
		if path == "" {
			return v, nil
		}
		v.editing = false
		v.pathEdit.Blur()
		return v, v.startSave(path)
	}
	var cmd tea.Cmd
	v.pathEdit, cmd = v.pathEdit.Update(msg)
	return v, cmd
}

func (v *View) startExport(format domain.ExportFormat) tea.Cmd {
	v.busy = true
	v.notice = ""
	ctx, session := v.ctx, v.session
	return func() tea.Msg {
		if session == nil {
			return messages.ExportCompleted{Format: format, Err: ErrNoSession}
		}
		path, err := v.exports.Export(ctx, session, format, "")
		return messages.ExportCompleted{Format: format, Path: path, Err: err}
	}
}

func (v *View) startSave(path string) tea.Cmd {
	v.busy = true
	v.notice = ""
	ctx, session := v.ctx, v.session
	return func() tea.Msg {
		switch {
		case session == nil:
			return messages.SessionSaved{Path: path, Err: ErrNoSession}
		case v.sessions == nil:
			return messages.SessionSaved{Path: path, Err: ErrNoSessionService}
		}
		return messages.SessionSaved{Path: path, Err: v.sessions.Save(ctx, path, session)}
	}
}

// View renders the export view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	picked := 0
	if v.session != nil {
		picked = len(v.session.ExportRows())
	}

	sections := []string{
		v.styles.Title.Render("Export"),
		v.styles.Muted.Render(fmt.Sprintf("%d picked items", picked)),
		"",
	}
	for i, format := range v.formats {
		sections = append(sections, v.renderItem(i, "Export "+string(format)))
	}
	sections = append(sections, v.renderItem(len(v.formats), "Save session"))

	if v.editing {
		sections = append(sections, "", v.pathEdit.View())
	}
	switch {
	case v.busy:
		sections = append(sections, "", v.styles.Muted.Render("Writing..."))
	case v.err != nil:
		sections = append(sections, "", v.styles.Error.Render("Error: "+v.err.Error()))
	case v.notice != "":
		sections = append(sections, "", v.styles.Success.Render(v.notice))
	}

	sections = append(sections, "", v.styles.Help.Render("[j/k] Navigate  [Enter] Write  [esc] Back"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderItem(i int, label string) string {
	if i == v.selected {
		return "> " + v.styles.Selected.Render(label)
	}
	return "  " + v.styles.Normal.Render(label)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.pathEdit.SetWidth(width)
}

// Formats returns the export formats offered.
func (v *View) Formats() []domain.ExportFormat {
	return v.formats
}

// Notice returns the last success message.
func (v *View) Notice() string {
	return v.notice
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
