package mcp

import (
	"github.com/custodia-labs/vmt/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces used by the MCP server.
type Ports struct {
	// Analysis generates queries from text.
	Analysis driving.AnalysisService

	// Media searches stock providers. Without it the search tools are
	// not offered.
	Media driving.MediaService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	return nil
}
