// Package queries provides the generated query list view for the TUI.
package queries

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/vmt/internal/core/domain"
)

// View lists the session queries and what has been picked for each.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.TextInput
	statusbar *status.Bar

	session *domain.Session
	details map[string]domain.Query

	selected int
	adding   bool
	width    int
	height   int
	ready    bool
}

// NewView creates the queries view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := status.NewBar(s, km)
	bar.SetState(status.StateQueries)

	return &View{
		styles:    s,
		keymap:    km,
		input:     input.NewTextInput(s, "Query", "type a search query"),
		statusbar: bar,
		details:   map[string]domain.Query{},
		width:     80,
		height:    24,
	}
}

// SetSession shows the queries of session. analysis may be nil for
// sessions loaded from disk.
func (v *View) SetSession(session *domain.Session, analysis *domain.Analysis) {
	v.session = session
	v.details = map[string]domain.Query{}
	if analysis != nil {
		for _, q := range analysis.Queries {
			v.details[q.Text] = q
		}
	}
	v.input.SetSuggestions(suggestions(analysis))
	v.selected = 0
	v.adding = false
	v.input.Blur()
	v.refreshStatus()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the queries view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.adding {
			return v.handleInputKey(msg)
		}
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEsc:
		v.stopAdding()
		return v, nil
	case tea.KeyEnter:
		query := v.input.Query()
		v.stopAdding()
		v.addQuery(query)
		return v, nil
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case key == "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keymap.Matches(key, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(key, v.keymap.Down):
		if v.selected < v.count()-1 {
			v.selected++
		}
	case keymap.Matches(key, v.keymap.Search):
		if query := v.SelectedQuery(); query != "" {
			return v, func() tea.Msg {
				return messages.SearchRequested{Query: query}
			}
		}
	case keymap.Matches(key, v.keymap.AddQuery):
		if v.session != nil {
			v.adding = true
			v.input.Reset()
			return v, v.input.Focus()
		}
	case keymap.Matches(key, v.keymap.Deselect):
		if query := v.SelectedQuery(); query != "" {
			v.session.Deselect(query)
		}
	case keymap.Matches(key, v.keymap.MediaType):
		v.toggleMediaType()
	case keymap.Matches(key, v.keymap.Export):
		if v.session != nil {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewExport}
			}
		}
	}
	return v, nil
}

// suggestions offers the analysed topics as completions for typed queries.
func suggestions(analysis *domain.Analysis) []string {
	if analysis == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	add := func(s string) {
		s = strings.ToLower(s)
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, k := range analysis.Keywords {
		add(k.Phrase())
	}
	for _, e := range analysis.Entities {
		add(e.Text)
	}
	return out
}

func (v *View) stopAdding() {
	v.adding = false
	v.input.Blur()
	v.input.Reset()
}

// addQuery appends query to the session and selects it.
// An existing query is selected instead of added twice.
func (v *View) addQuery(query string) {
	if query == "" || v.session == nil {
		return
	}
	for i, q := range v.session.Queries {
		if strings.EqualFold(q, query) {
			v.selected = i
			return
		}
	}
	v.session.Queries = append(v.session.Queries, query)
	v.selected = len(v.session.Queries) - 1
	v.refreshStatus()
}

func (v *View) toggleMediaType() {
	if v.session == nil {
		return
	}
	if v.session.MediaType == domain.MediaVideo {
		v.session.MediaType = domain.MediaPhoto
	} else {
		v.session.MediaType = domain.MediaVideo
	}
	v.statusbar.SetMessage("")
}

func (v *View) refreshStatus() {
	v.statusbar.SetState(status.StateQueries)
	v.statusbar.SetCount(v.count())
	if v.session != nil {
		v.statusbar.SetPicked(len(v.session.Selected))
	}
}

func (v *View) count() int {
	if v.session == nil {
		return 0
	}
	return len(v.session.Queries)
}

// View renders the queries view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections, v.styles.Title.Render("Queries"))
	if v.session == nil {
		sections = append(sections, "", v.styles.Muted.Render("No session yet. Analyse a transcript first."))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	sections = append(sections,
		v.styles.Muted.Render(fmt.Sprintf("Media type: %s", v.session.MediaType)),
		"",
		v.renderList(),
	)
	if v.adding {
		sections = append(sections, "", v.input.View())
	}
	// Picks also arrive from the results view.
	v.refreshStatus()
	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderList() string {
	if v.count() == 0 {
		return v.styles.Muted.Render("No queries generated. Press / to add one.")
	}

	// Each query takes up to two lines
	visible := (v.height - 10) / 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if v.selected >= visible {
		start = v.selected - visible + 1
	}
	end := min(start+visible, v.count())

	lines := make([]string, 0, (end-start)*2)
	for i := start; i < end; i++ {
		lines = append(lines, v.renderQuery(i)...)
	}
	return strings.Join(lines, "\n")
}

func (v *View) renderQuery(i int) []string {
	query := v.session.Queries[i]
	indicator := "  "
	if i == v.selected {
		indicator = "> "
	}
	item, picked := v.session.Selected[query]
	mark := " "
	if picked {
		mark = v.styles.Picked.Render("✓")
	}

	text := v.styles.Normal.Render(query)
	if i == v.selected {
		text = v.styles.Selected.Render(query)
	}
	line := indicator + mark + " " + text
	if d, ok := v.details[query]; ok {
		line += "  " + v.styles.Emotion(d.Emotion).Render(tags(d)) + v.styles.Muted.Render(fmt.Sprintf("  %.2f", d.Score))
	}

	out := []string{line}
	if picked {
		out = append(out, v.styles.Muted.Render(fmt.Sprintf("     %s (%s)", item.Title, item.Provider)))
	}
	return out
}

// tags describes where a query came from.
func tags(q domain.Query) string {
	parts := []string{q.Topic}
	if q.Action != "" {
		parts = append(parts, q.Action)
	}
	if q.Emotion != "" {
		parts = append(parts, q.Emotion.String())
	}
	return strings.Join(parts, " · ")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
}

// SelectedQuery returns the highlighted query, or "" when there is none.
func (v *View) SelectedQuery() string {
	if v.session == nil || v.selected < 0 || v.selected >= len(v.session.Queries) {
		return ""
	}
	return v.session.Queries[v.selected]
}

// Highlight moves the cursor to query if it is listed.
func (v *View) Highlight(query string) {
	if v.session == nil {
		return
	}
	for i, q := range v.session.Queries {
		if q == query {
			v.selected = i
			return
		}
	}
}

// Selected returns the highlighted index.
func (v *View) Selected() int {
	return v.selected
}

// Adding reports whether the query input is open.
func (v *View) Adding() bool {
	return v.adding
}

// Session returns the session being shown.
func (v *View) Session() *domain.Session {
	return v.session
}
