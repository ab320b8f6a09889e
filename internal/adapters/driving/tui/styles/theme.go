// Package styles holds the colours and lipgloss styles of the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

// Theme is the colour palette.
type Theme struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color
	Bar        lipgloss.Color

	// Accent marks picked media.
	Accent lipgloss.Color

	// Emotions tints the provenance tag of a query by its tone.
	// Labels without an entry use Accent.
	Emotions map[domain.EmotionLabel]lipgloss.Color
}

// DefaultTheme returns a warm darkroom palette.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#E0A458"), // amber
		Secondary:  lipgloss.Color("#5FB3B3"), // teal
		Foreground: lipgloss.Color("#E6E1D6"),
		Muted:      lipgloss.Color("#7D7667"),
		Success:    lipgloss.Color("#99C794"),
		Warning:    lipgloss.Color("#FAC863"),
		Error:      lipgloss.Color("#EC5F67"),
		Border:     lipgloss.Color("#4F4A40"),
		Bar:        lipgloss.Color("#221F1A"),
		Accent:     lipgloss.Color("#F99157"),
		Emotions: map[domain.EmotionLabel]lipgloss.Color{
			domain.EmotionJoy:      "#FAC863",
			domain.EmotionCalm:     "#5FB3B3",
			domain.EmotionHope:     "#99C794",
			domain.EmotionRomance:  "#F7A8B8",
			domain.EmotionSurprise: "#C594C5",
			domain.EmotionTension:  "#F99157",
			domain.EmotionFear:     "#A09F93",
			domain.EmotionSadness:  "#6699CC",
			domain.EmotionAnger:    "#EC5F67",
		},
	}
}

// Styles are the lipgloss styles built from a Theme.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Help     lipgloss.Style

	// Selected highlights the row under the cursor.
	Selected lipgloss.Style

	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style

	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Border     lipgloss.Style

	// Picked marks a query that already has media chosen.
	Picked lipgloss.Style

	// Link renders asset URLs.
	Link lipgloss.Style

	// Tag renders the topic, action and tone a query was built from.
	Tag lipgloss.Style
}

// NewStyles creates styles from a theme. A nil theme uses DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	framed := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)

	return &Styles{
		theme:      theme,
		Title:      fg(theme.Primary).Bold(true),
		Subtitle:   fg(theme.Secondary).Bold(true),
		Normal:     fg(theme.Foreground),
		Muted:      fg(theme.Muted),
		Help:       fg(theme.Muted),
		Selected:   fg(theme.Bar).Background(theme.Primary).Bold(true),
		Error:      fg(theme.Error),
		Success:    fg(theme.Success),
		Warning:    fg(theme.Warning),
		InputField: framed.Padding(0, 1),
		StatusBar:  fg(theme.Muted).Background(theme.Bar).Padding(0, 1),
		Border:     framed,
		Picked:     fg(theme.Accent).Bold(true),
		Link:       fg(theme.Secondary).Underline(true),
		Tag:        fg(theme.Accent).Italic(true),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Emotion returns the tag style tinted for label.
func (s *Styles) Emotion(label domain.EmotionLabel) lipgloss.Style {
	if c, ok := s.theme.Emotions[label]; ok {
		return s.Tag.Foreground(c)
	}
	return s.Tag
}
