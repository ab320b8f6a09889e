package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/views/analyze"
	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/views/export"
	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/views/providers"
	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/views/queries"
	"github.com/custodia-labs/vmt/internal/adapters/driving/tui/views/results"
	"github.com/custodia-labs/vmt/internal/core/domain"
	"github.com/custodia-labs/vmt/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	menuView      *menu.View
	analyzeView   *analyze.View
	queriesView   *queries.View
	resultsView   *results.View
	exportView    *export.View
	providersView *providers.View

	// session is the working set being edited, nil until a transcript is analysed.
	session *domain.Session

	// analysis is the run the session came from, nil for loaded sessions.
	analysis *domain.Analysis

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	app := &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		keymap:        km,
		menuView:      menu.NewView(s, km),
		analyzeView:   analyze.NewView(s, km, ports.Analysis, ports.Session),
		queriesView:   queries.NewView(s, km),
		resultsView:   results.NewView(s, km, ports.Media),
		exportView:    export.NewView(s, km, ports.Export, ports.Session),
		providersView: providers.NewView(s, ports.Settings, ports.Media),
		currentView:   messages.ViewMenu,
	}
	app.applySettings()
	return app, nil
}

// applySettings pushes the configured analysis and search defaults into the views.
func (a *App) applySettings() {
	settings := domain.DefaultAppSettings()
	if a.ports.Settings != nil {
		loaded, err := a.ports.Settings.Get()
		if err != nil {
			logger.Warn("Using default settings: %v", err)
		} else {
			settings = *loaded
		}
	}
	a.analyzeView.SetOptions(settings.AnalysisOptions(), settings.Search.MediaType)
	a.resultsView.SetLimit(settings.Search.PerProvider)
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.analyzeView.WithContext(ctx)
	a.resultsView.WithContext(ctx)
	a.exportView.WithContext(ctx)
	return a
}

// WithSession opens the app on an existing session.
func (a *App) WithSession(session *domain.Session) *App {
	if session != nil {
		a.setSession(session, nil)
		a.currentView = messages.ViewQueries
	}
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("vmt - stock media for transcripts"),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
			return a, nil
		}
		return a, a.forward(msg)

	case messages.ViewChanged:
		return a, a.switchView(msg.View)

	case messages.AnalysisCompleted:
		a.analyzeView, cmd = a.analyzeView.Update(msg)
		if msg.Err != nil {
			a.err = msg.Err
			return a, cmd
		}
		a.err = nil
		a.setSession(msg.Session, msg.Analysis)
		a.currentView = messages.ViewQueries
		return a, cmd

	case messages.SearchRequested:
		if a.session == nil {
			a.err = ErrNoSession
			return a, nil
		}
		a.currentView = messages.ViewResults
		picked := a.session.Selected[msg.Query].URL
		return a, a.resultsView.Search(msg.Query, a.session.MediaType, picked)

	case messages.SearchCompleted:
		a.resultsView, cmd = a.resultsView.Update(msg)
		a.err = a.resultsView.Err()
		return a, cmd

	case messages.ResultSelected:
		a.selectResult(msg.Query, msg.Result)
		return a, nil

	case messages.ExportCompleted, messages.SessionSaved:
		a.exportView, cmd = a.exportView.Update(msg)
		a.err = a.exportView.Err()
		return a, cmd

	case messages.ProvidersLoaded:
		a.providersView, cmd = a.providersView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewResults {
			a.resultsView, cmd = a.resultsView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (cursor blinks and the like) to the active view
	return a, a.forward(msg)
}

// forward hands msg to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewAnalyze:
		a.analyzeView, cmd = a.analyzeView.Update(msg)
	case messages.ViewQueries:
		a.queriesView, cmd = a.queriesView.Update(msg)
	case messages.ViewResults:
		a.resultsView, cmd = a.resultsView.Update(msg)
	case messages.ViewExport:
		a.exportView, cmd = a.exportView.Update(msg)
	case messages.ViewProviders:
		a.providersView, cmd = a.providersView.Update(msg)
	case messages.ViewHelp:
		// Help view is static
	}
	return cmd
}

// switchView activates view, preparing it first.
func (a *App) switchView(view messages.ViewType) tea.Cmd {
	switch view {
	case messages.ViewQueries, messages.ViewExport, messages.ViewResults:
		if a.session == nil {
			a.err = ErrNoSession
			a.currentView = messages.ViewMenu
			return nil
		}
	}

	a.currentView = view
	switch view {
	case messages.ViewMenu:
		a.menuView.SetSession(a.session)
	case messages.ViewAnalyze:
		return a.analyzeView.Init()
	case messages.ViewQueries:
		// The session may have gained queries or picks in the results view
		a.queriesView.SetSession(a.session, a.analysis)
	case messages.ViewExport:
		a.exportView.SetSession(a.session)
	case messages.ViewProviders:
		a.providersView.Reset()
		return a.providersView.Init()
	case messages.ViewResults, messages.ViewHelp:
		// Nothing to prepare
	}
	return nil
}

// setSession makes session the working set.
func (a *App) setSession(session *domain.Session, analysis *domain.Analysis) {
	a.session = session
	a.analysis = analysis
	a.queriesView.SetSession(session, analysis)
	a.exportView.SetSession(session)
	a.menuView.SetSession(session)
}

// selectResult records result as the pick for query and returns to the queries.
func (a *App) selectResult(query string, result domain.MediaResult) {
	if a.session == nil {
		a.err = ErrNoSession
		return
	}
	var err error
	if a.ports.Session != nil {
		err = a.ports.Session.Select(a.ctx, a.session, query, result)
	} else {
		a.session.Select(query, result)
		if !containsQuery(a.session.Queries, query) {
			a.session.Queries = append(a.session.Queries, query)
		}
	}
	if err != nil {
		a.err = err
		return
	}
	a.err = nil
	a.switchView(messages.ViewQueries)
	a.queriesView.Highlight(query)
}

func containsQuery(list []string, query string) bool {
	for _, q := range list {
		if q == query {
			return true
		}
	}
	return false
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		out := a.menuView.View()
		if a.err != nil {
			out += "\n\n" + a.styles.Error.Render("Error: "+a.err.Error())
		}
		return out
	case messages.ViewAnalyze:
		return a.analyzeView.View()
	case messages.ViewQueries:
		return a.queriesView.View()
	case messages.ViewResults:
		return a.resultsView.View()
	case messages.ViewExport:
		return a.exportView.View()
	case messages.ViewProviders:
		return a.providersView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view from the key map.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Muted.Render("Analyse a transcript, search each query, pick a clip, then export."))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Help.Render("[esc] back to menu"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Session returns the working session, or nil.
func (a *App) Session() *domain.Session {
	return a.session
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.analyzeView.SetDimensions(width, height)
	a.queriesView.SetDimensions(width, height)
	a.resultsView.SetDimensions(width, height)
	a.exportView.SetDimensions(width, height)
	a.providersView.SetDimensions(width, height)
}
