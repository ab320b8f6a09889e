// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/vmt/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewAnalyze is the transcript entry view.
	ViewAnalyze
	// ViewQueries lists the generated queries of the session.
	ViewQueries
	// ViewResults shows provider results for one query.
	ViewResults
	// ViewExport writes the session in an export format.
	ViewExport
	// ViewProviders shows provider configuration.
	ViewProviders
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewAnalyze:
		return "analyze"
	case ViewQueries:
		return "queries"
	case ViewResults:
		return "results"
	case ViewExport:
		return "export"
	case ViewProviders:
		return "providers"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// AnalysisCompleted carries the analysis of the entered transcript and
// the session started from it.
type AnalysisCompleted struct {
	Analysis *domain.Analysis
	Session  *domain.Session
	Err      error
}

// SearchRequested asks for provider results for a query.
type SearchRequested struct {
	Query string
}

// SearchCompleted carries provider results back to the model.
type SearchCompleted struct {
	Query     string
	MediaType domain.MediaType
	Results   []domain.MediaResult
	Err       error
}

// ResultSelected is sent when a result is chosen for a query.
type ResultSelected struct {
	Query  string
	Result domain.MediaResult
}

// ExportCompleted signals an export finished.
type ExportCompleted struct {
	Format domain.ExportFormat
	Path   string
	Err    error
}

// SessionSaved signals the session file was written.
type SessionSaved struct {
	Path string
	Err  error
}

// ProvidersLoaded carries provider status and settings.
type ProvidersLoaded struct {
	Providers []domain.ProviderStatus
	Settings  *domain.AppSettings
	Err       error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
