// Package mcp provides an MCP (Model Context Protocol) server adapter for vmt.
// It lets AI assistants generate stock-media queries from transcript text
// and search the configured providers.
package mcp

import "errors"

// ErrMissingAnalysisService is returned when the analysis service is not provided.
var ErrMissingAnalysisService = errors.New("mcp: analysis service is required")
