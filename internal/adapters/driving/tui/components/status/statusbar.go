// Package status renders the one-line bar at the foot of each view.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/styles"
)

// State selects what the left side of the bar says and which key hints
// the right side shows.
type State string

const (
	StateReady   State = "ready"
	StateWorking State = "working"
	StateError   State = "error"
	StateQueries State = "queries"
	StateResults State = "results"
)

// Bar is passive: views push state into it and render it last.
type Bar struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	state   State
	message string
	count   int
	picked  int
	width   int
}

// NewBar creates a bar in StateReady. Nil arguments use the defaults.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{styles: s, keymap: km, state: StateReady, width: 80}
}

// View renders the bar padded to its width. Hints are dropped before the
// status text when the two do not fit.
func (s *Bar) View() string {
	left, right := s.status(), s.hints()
	gap := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		right, gap = "", 1
	}
	return s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (s *Bar) status() string {
	switch s.state {
	case StateWorking:
		return s.styles.Muted.Render(or(s.message, "Working") + "...")
	case StateError:
		if s.message == "" {
			return s.styles.Error.Render("Error")
		}
		return s.styles.Error.Render("Error: " + s.message)
	case StateQueries:
		text := plural(s.count, "query", "queries")
		if s.count > 0 {
			text += fmt.Sprintf(", %d picked", s.picked)
		}
		if s.picked == s.count && s.count > 0 {
			return s.styles.Success.Render(text)
		}
		return s.styles.Normal.Render(text)
	case StateResults:
		text := s.styles.Normal.Render(plural(s.count, "result", "results"))
		if s.message != "" {
			text += s.styles.Warning.Render(", " + s.message)
		}
		return text
	}
	if s.message != "" {
		return s.styles.Success.Render(s.message)
	}
	return s.styles.Muted.Render("Ready")
}

func (s *Bar) hints() string {
	var bindings []key.Binding
	switch s.state {
	case StateQueries:
		bindings = s.keymap.QueriesHelp()
	case StateResults:
		bindings = s.keymap.ResultsHelp()
	default:
		bindings = s.keymap.ShortHelp()
	}
	return s.styles.Muted.Render(keymap.Hints(bindings))
}

func or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}

func (s *Bar) SetState(state State)      { s.state = state }
func (s *Bar) State() State              { return s.state }
func (s *Bar) SetMessage(message string) { s.message = message }
func (s *Bar) Message() string           { return s.message }
func (s *Bar) SetWidth(width int)        { s.width = width }
func (s *Bar) Width() int                { return s.width }

// SetCount sets how many queries or results the view lists.
func (s *Bar) SetCount(count int) { s.count = count }

func (s *Bar) Count() int { return s.count }

// SetPicked sets how many queries have media chosen.
func (s *Bar) SetPicked(picked int) { s.picked = picked }

// Clear returns the bar to StateReady with no message.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.count = 0
	s.picked = 0
}
