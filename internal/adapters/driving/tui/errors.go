package tui

import "errors"

var (
	// ErrMissingAnalysisService means Ports has no analysis service. The
	// TUI cannot start without one.
	ErrMissingAnalysisService = errors.New("tui: analysis service is required")

	// ErrMissingMediaService means Ports has no media service.
	ErrMissingMediaService = errors.New("tui: media service is required")

	// ErrNoSession is shown when a session view is opened before analysis.
	ErrNoSession = errors.New("tui: analyse a transcript first")
)
