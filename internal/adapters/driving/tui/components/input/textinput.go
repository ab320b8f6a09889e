// Package input provides the labelled one-line editor used for queries
// and file paths.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/styles"
)

// MaxLength caps what can be typed. Provider query strings are short.
const MaxLength = 200

// minInner is the narrowest the editable field gets.
const minInner = 20

// TextInput is a bubbles textinput with a label. Tab accepts the shown
// completion when suggestions are set.
type TextInput struct {
	model  textinput.Model
	styles *styles.Styles
	label  string
	width  int
}

// NewTextInput creates an unfocused input.
func NewTextInput(s *styles.Styles, label, placeholder string) *TextInput {
	if s == nil {
		s = styles.DefaultStyles()
	}
	m := textinput.New()
	m.Placeholder = placeholder
	m.CharLimit = MaxLength
	m.Prompt = "› "

	t := &TextInput{model: m, styles: s, label: label}
	t.SetWidth(60)
	return t
}

func (t *TextInput) Init() tea.Cmd {
	return textinput.Blink
}

func (t *TextInput) Update(msg tea.Msg) (*TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.model, cmd = t.model.Update(msg)
	return t, cmd
}

func (t *TextInput) View() string {
	//nolint:misspell // lipgloss spelling
	return lipgloss.JoinHorizontal(lipgloss.Center,
		t.styles.Title.Render(t.label+": "),
		t.styles.InputField.Render(t.model.View()),
	)
}

func (t *TextInput) Label() string { return t.label }

// Value returns the raw text.
func (t *TextInput) Value() string { return t.model.Value() }

// Query returns the text trimmed with inner whitespace collapsed.
func (t *TextInput) Query() string {
	return strings.Join(strings.Fields(t.model.Value()), " ")
}

// SetValue replaces the text and moves the cursor to its end.
func (t *TextInput) SetValue(value string) {
	t.model.SetValue(value)
	t.model.CursorEnd()
}

// SetSuggestions sets the completions offered while typing. Nil turns
// completion off.
func (t *TextInput) SetSuggestions(suggestions []string) {
	t.model.ShowSuggestions = len(suggestions) > 0
	t.model.SetSuggestions(suggestions)
}

func (t *TextInput) Focus() tea.Cmd { return t.model.Focus() }
func (t *TextInput) Blur()          { t.model.Blur() }
func (t *TextInput) Focused() bool  { return t.model.Focused() }
func (t *TextInput) Reset()         { t.model.Reset() }
func (t *TextInput) Width() int     { return t.width }

// SetWidth fits the field into width columns beside its label.
func (t *TextInput) SetWidth(width int) {
	t.width = width
	// label, ": ", prompt, border and padding
	t.model.Width = max(width-lipgloss.Width(t.label)-8, minInner)
}
