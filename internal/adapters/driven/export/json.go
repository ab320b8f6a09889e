package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/custodia-labs/vmt/internal/core/domain"
	"github.com/custodia-labs/vmt/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.Exporter = (*JSONExporter)(nil)

// JSONExporter writes the selected items as a JSON array.
type JSONExporter struct{}

// NewJSONExporter creates a JSON results exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Format returns domain.ExportJSON.
func (e *JSONExporter) Format() domain.ExportFormat {
	return domain.ExportJSON
}

// Export writes the items, each with its query, to path.
func (e *JSONExporter) Export(_ context.Context, path string, session *domain.Session) error {
	if session == nil {
		return domain.ErrInvalidInput
	}
	items := session.ExportRows()

	return writeFile(path, func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(items); err != nil {
			return fmt.Errorf("encode results: %w", err)
		}
		return nil
	})
}
