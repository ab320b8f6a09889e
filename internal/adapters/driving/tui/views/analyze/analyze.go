// Package analyze provides the transcript entry view for the TUI.
package analyze

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/vmt/internal/core/domain"
	"github.com/custodia-labs/vmt/internal/core/ports/driving"
)

// ErrNoAnalysisService is reported when the view has nothing to analyse with.
var ErrNoAnalysisService = errors.New("analysis service not available")

// View collects transcript text and turns it into a session.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	textarea  textarea.Model
	statusbar *status.Bar

	analysis driving.AnalysisService
	sessions driving.SessionService
	ctx      context.Context

	opts      domain.AnalysisOptions
	mediaType domain.MediaType

	running bool
	err     error
	width   int
	height  int
	ready   bool
}

// NewView creates the analyse view. sessions may be nil, in which case
// sessions are built in memory.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	analysis driving.AnalysisService,
	sessions driving.SessionService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	ta := textarea.New()
	ta.Placeholder = "Paste or type a transcript..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(76)
	ta.SetHeight(12)

	return &View{
		styles:    s,
		keymap:    km,
		textarea:  ta,
		statusbar: status.NewBar(s, km),
		analysis:  analysis,
		sessions:  sessions,
		ctx:       context.Background(),
		mediaType: domain.MediaPhoto,
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetOptions sets the analysis options and the media type new sessions use.
func (v *View) SetOptions(opts domain.AnalysisOptions, mediaType domain.MediaType) {
	v.opts = opts
	if mediaType.IsValid() {
		v.mediaType = mediaType
	}
}

// Init focuses the text area.
func (v *View) Init() tea.Cmd {
	return v.textarea.Focus()
}

// Update handles messages for the analyse view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.AnalysisCompleted:
		v.running = false
		v.err = msg.Err
		if msg.Err != nil {
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
		} else {
			v.statusbar.Clear()
		}
		return v, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
		if keymap.Matches(msg.String(), v.keymap.Analyze) {
			return v, v.submit()
		}
	}

	var cmd tea.Cmd
	v.textarea, cmd = v.textarea.Update(msg)
	return v, cmd
}

// submit starts the analysis unless one is running or there is no text.
func (v *View) submit() tea.Cmd {
	text := strings.TrimSpace(v.textarea.Value())
	if text == "" || v.running {
		return nil
	}
	v.running = true
	v.err = nil
	v.statusbar.SetState(status.StateWorking)
	v.statusbar.SetMessage("Analysing")
	return v.runAnalysis(text)
}

// runAnalysis analyses text and starts a session from the queries.
func (v *View) runAnalysis(text string) tea.Cmd {
	ctx, opts, mediaType := v.ctx, v.opts, v.mediaType
	return func() tea.Msg {
		if v.analysis == nil {
			return messages.AnalysisCompleted{Err: ErrNoAnalysisService}
		}
		result, err := v.analysis.Analyze(ctx, text, opts)
		if err != nil {
			return messages.AnalysisCompleted{Err: err}
		}

		queries := result.QueryTexts()
		if v.sessions == nil {
			return messages.AnalysisCompleted{
				Analysis: result,
				Session: &domain.Session{
					Text:      text,
					Queries:   queries,
					Selected:  map[string]domain.MediaResult{},
					MediaType: mediaType,
				},
			}
		}
		session, err := v.sessions.Create(ctx, text, queries, mediaType)
		return messages.AnalysisCompleted{Analysis: result, Session: session, Err: err}
	}
}

// View renders the analyse view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{
		v.styles.Title.Render("Analyse transcript"),
		v.styles.Muted.Render("Media type: " + v.mediaType.String()),
		"",
		v.styles.Border.Render(v.textarea.View()),
	}
	if v.err != nil {
		sections = append(sections, "", v.styles.Error.Render("Error: "+v.err.Error()))
	}
	sections = append(sections,
		"",
		v.styles.Help.Render("[ctrl+s] Analyse  [esc] Back"),
		"",
		v.statusbar.View(),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.textarea.SetWidth(max(width-4, 20))
	v.textarea.SetHeight(max(height-12, 3))
	v.statusbar.SetWidth(width)
}

// SetText replaces the transcript text.
func (v *View) SetText(text string) {
	v.textarea.SetValue(text)
}

// Text returns the transcript text.
func (v *View) Text() string {
	return v.textarea.Value()
}

// Running reports whether an analysis is in flight.
func (v *View) Running() bool {
	return v.running
}

// Err returns the last analysis error.
func (v *View) Err() error {
	return v.err
}

// Reset clears the text and any error.
func (v *View) Reset() {
	v.textarea.Reset()
	v.running = false
	v.err = nil
	v.statusbar.Clear()
}
