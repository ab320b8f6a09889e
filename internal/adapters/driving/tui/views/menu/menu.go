// Package menu is the TUI start screen.
package menu

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/vmt/internal/core/domain"
)

// Item is one menu entry. Shortcut jumps straight to it.
type Item struct {
	Label    string
	Shortcut string
	View     messages.ViewType
	Quit     bool

	// NeedsSession hides the item until a transcript has been analysed.
	NeedsSession bool
}

// View lists the items that apply to the current session.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	items  []Item

	session  *domain.Session
	selected int
	ready    bool
}

// NewView creates the menu. Nil arguments use the defaults.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles: s,
		keymap: km,
		items: []Item{
			{Label: "Analyse transcript", Shortcut: "a", View: messages.ViewAnalyze},
			{Label: "Queries", Shortcut: "u", View: messages.ViewQueries, NeedsSession: true},
			{Label: "Export", Shortcut: "e", View: messages.ViewExport, NeedsSession: true},
			{Label: "Providers", Shortcut: "p", View: messages.ViewProviders},
			{Label: "Help", Shortcut: "?", View: messages.ViewHelp},
			{Label: "Quit", Shortcut: "q", Quit: true},
		},
	}
}

func (v *View) Init() tea.Cmd {
	return nil
}

func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
	case tea.KeyMsg:
		return v, v.handleKey(msg.String())
	}
	return v, nil
}

func (v *View) handleKey(pressed string) tea.Cmd {
	items := v.visibleItems()
	switch {
	case keymap.Matches(pressed, v.keymap.Up):
		v.selected = max(v.selected-1, 0)
	case keymap.Matches(pressed, v.keymap.Down):
		v.selected = min(v.selected+1, len(items)-1)
	case keymap.Matches(pressed, v.keymap.Select):
		return open(items[v.selected])
	default:
		for i, item := range items {
			if item.Shortcut == pressed {
				v.selected = i
				return open(item)
			}
		}
	}
	return nil
}

func open(item Item) tea.Cmd {
	if item.Quit {
		return tea.Quit
	}
	return func() tea.Msg { return messages.ViewChanged{View: item.View} }
}

func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("vmt"))
	b.WriteString("  ")
	b.WriteString(v.styles.Muted.Render("stock footage for your transcript"))
	b.WriteString("\n\n")

	for i, item := range v.visibleItems() {
		label := item.Label
		if item.View == messages.ViewQueries && v.session != nil {
			label = fmt.Sprintf("%s (%d)", label, len(v.session.Queries))
		}
		hint := v.styles.Muted.Render("[" + item.Shortcut + "]")
		if i == v.selected {
			fmt.Fprintf(&b, "> %s %s\n", hint, v.styles.Subtitle.Render(label))
		} else {
			fmt.Fprintf(&b, "  %s %s\n", hint, v.styles.Normal.Render(label))
		}
	}

	if v.session != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(summary(v.session)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render(keymap.Hints([]key.Binding{v.keymap.Up, v.keymap.Select, v.keymap.Quit})))
	return b.String()
}

func summary(s *domain.Session) string {
	return fmt.Sprintf("Session: %d queries, %d picked, %s", len(s.Queries), len(s.Selected), s.MediaType)
}

// SetSession shows or hides the session items and resets the cursor.
func (v *View) SetSession(session *domain.Session) {
	v.session = session
	v.selected = 0
}

func (v *View) visibleItems() []Item {
	out := make([]Item, 0, len(v.items))
	for _, item := range v.items {
		if item.NeedsSession && v.session == nil {
			continue
		}
		out = append(out, item)
	}
	return out
}

// SetDimensions marks the view ready. The menu does not depend on size.
func (v *View) SetDimensions(_, _ int) {
	v.ready = true
}

func (v *View) Selected() int {
	return v.selected
}
