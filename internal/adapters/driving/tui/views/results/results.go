// Package results shows what the providers returned for one query.
package results

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/vmt/internal/core/domain"
	"github.com/custodia-labs/vmt/internal/core/ports/driving"
)

// ErrNoMediaService is returned when no media service is configured.
var ErrNoMediaService = errors.New("media service not available")

// searchKey identifies a cached search.
type searchKey struct {
	query     string
	mediaType domain.MediaType
}

// View shows provider results for one query, with a query input to refine
// it. Successful searches are cached for the life of the view, so going
// back and forth between queries does not hit the providers again.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.TextInput
	list      *list.ResultList
	statusbar *status.Bar

	media driving.MediaService
	ctx   context.Context
	limit int

	query     string
	mediaType domain.MediaType
	cache     map[searchKey][]domain.MediaResult

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = editing the query, false = navigating results
}

// NewView creates a new results view.
func NewView(s *styles.Styles, km *keymap.KeyMap, media driving.MediaService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:    s,
		keymap:    km,
		input:     input.NewTextInput(s, "Query", "refine the query..."),
		list:      list.NewResultList(s),
		statusbar: status.NewBar(s, km),
		media:     media,
		ctx:       context.Background(),
		mediaType: domain.MediaPhoto,
		cache:     make(map[searchKey][]domain.MediaResult),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetLimit sets the number of results requested per provider.
func (v *View) SetLimit(limit int) {
	v.limit = limit
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Search shows query and searches the providers for it unless the
// results are cached. picked is the URL already chosen for the query.
func (v *View) Search(query string, mediaType domain.MediaType, picked string) tea.Cmd {
	v.query = query
	v.mediaType = mediaType
	v.err = nil
	v.focusInput = false
	v.input.Blur()
	v.input.SetValue(query)
	v.list.SetPicked(picked)

	if cached, ok := v.cache[searchKey{query, mediaType}]; ok {
		v.showResults(cached)
		return nil
	}
	return v.refresh()
}

// refresh searches the providers again for the current query.
func (v *View) refresh() tea.Cmd {
	v.list.SetResults(nil)
	v.statusbar.SetState(status.StateWorking)
	v.statusbar.SetMessage("Searching")
	return v.performSearch(v.query)
}

// Update handles messages for the results view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	return v, nil
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.focusInput {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyEsc:
			v.focusInput = false
			v.input.Blur()
			v.input.SetValue(v.query)
			return v, nil
		case tea.KeyEnter:
			query := v.input.Query()
			if query == "" {
				return v, nil
			}
			return v, v.Search(query, v.mediaType, "")
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	// Esc goes back to the query list
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewQueries}
		}
	}

	if keymap.Matches(msg.String(), v.keymap.Pick) {
		result := v.list.SelectedResult()
		if result == nil || result.Error {
			return v, nil
		}
		chosen, query := *result, v.query
		v.list.SetPicked(chosen.URL)
		return v, func() tea.Msg {
			return messages.ResultSelected{Query: query, Result: chosen}
		}
	}

	if keymap.Matches(msg.String(), v.keymap.AddQuery) {
		v.focusInput = true
		return v, v.input.Focus()
	}

	if keymap.Matches(msg.String(), v.keymap.Refresh) && v.query != "" {
		delete(v.cache, searchKey{v.query, v.mediaType})
		return v, v.refresh()
	}

	v.list, _ = v.list.Update(msg)
	return v, nil
}

// performSearch runs the search and reports the results.
func (v *View) performSearch(query string) tea.Cmd {
	ctx, media := v.ctx, v.media
	opts := domain.MediaSearchOptions{Limit: v.limit, MediaType: v.mediaType}
	return func() tea.Msg {
		if media == nil {
			return messages.ErrorOccurred{Err: ErrNoMediaService}
		}
		results, err := media.Search(ctx, query, opts)
		return messages.SearchCompleted{Query: query, MediaType: opts.MediaType, Results: results, Err: err}
	}
}

func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Err != nil {
		if msg.Query == v.query {
			v.err = msg.Err
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
		}
		return
	}
	mediaType := msg.MediaType
	if mediaType == "" {
		mediaType = v.mediaType
	}
	// Results with provider stubs are not cached so a retry can succeed.
	if failedProviders(msg.Results) == 0 {
		v.cache[searchKey{msg.Query, mediaType}] = msg.Results
	}
	// The user may have moved on to another query meanwhile.
	if msg.Query != v.query || mediaType != v.mediaType {
		return
	}
	v.err = nil
	v.showResults(msg.Results)
}

func (v *View) showResults(results []domain.MediaResult) {
	v.list.SetResults(results)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetCount(len(results))
	v.statusbar.SetMessage("")
	if n := failedProviders(results); n > 0 {
		v.statusbar.SetMessage(fmt.Sprintf("%d provider(s) failed, r to retry", n))
	}
}

func failedProviders(results []domain.MediaResult) int {
	n := 0
	for _, r := range results {
		if r.Error {
			n++
		}
	}
	return n
}

// View renders the results view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections,
		v.styles.Title.Render("Results"),
		v.styles.Muted.Render("Media type: "+v.mediaType.String()),
		"",
		v.input.View(),
		"",
	)

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.list.View(), "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-12) // header, input and status
	v.statusbar.SetWidth(width)
}

// Query returns the query being shown.
func (v *View) Query() string {
	return v.query
}

// Results returns the current results.
func (v *View) Results() []domain.MediaResult {
	return v.list.Results()
}

// SelectedIndex returns the index of the highlighted result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the query input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
