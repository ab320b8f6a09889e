// Package tui provides an interactive terminal user interface for vmt.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/vmt/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Analysis turns transcripts into queries.
	Analysis driving.AnalysisService

	// Media searches the stock providers.
	Media driving.MediaService

	// Session creates and saves sessions. Optional.
	Session driving.SessionService

	// Export writes selections. Optional.
	Export driving.ExportService

	// Settings reads and edits configuration. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(analysis driving.AnalysisService, media driving.MediaService) *Ports {
	return &Ports{
		Analysis: analysis,
		Media:    media,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	if p.Media == nil {
		return ErrMissingMediaService
	}
	return nil
}
