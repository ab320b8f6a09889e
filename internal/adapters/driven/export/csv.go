package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/custodia-labs/vmt/internal/core/domain"
	"github.com/custodia-labs/vmt/internal/core/ports/driven"
)

// Verify interface compliance.
var (
	_ driven.Exporter = (*CSVExporter)(nil)
	_ driven.Exporter = (*ShotlistExporter)(nil)
)

// CSVExporter writes a cue sheet: one row per selection, every column.
type CSVExporter struct{}

// NewCSVExporter creates a cue sheet exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Format returns domain.ExportCSV.
func (e *CSVExporter) Format() domain.ExportFormat {
	return domain.ExportCSV
}

// Export writes the cue sheet to path.
func (e *CSVExporter) Export(_ context.Context, path string, session *domain.Session) error {
	if session == nil {
		return domain.ErrInvalidInput
	}
	rows := Rows(session)
	header := Header(rows)

	return writeFile(path, func(f *os.File) error {
		w := csv.NewWriter(f)
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		record := make([]string, len(header))
		for _, row := range rows {
			for i, col := range header {
				record[i] = row[col]
			}
			if err := w.Write(record); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
		}
		w.Flush()
		return w.Error()
	})
}

// shotlistHeader is the fixed column order of a shot list.
var shotlistHeader = []string{"shot", "query", "title", "provider", "media_type", "duration", "author", "license", "url"}

// ShotlistExporter writes a numbered shot list in query order, with fixed
// columns suited to an edit bay.
type ShotlistExporter struct{}

// NewShotlistExporter creates a shot list exporter.
func NewShotlistExporter() *ShotlistExporter {
	return &ShotlistExporter{}
}

// Format returns domain.ExportShotlist.
func (e *ShotlistExporter) Format() domain.ExportFormat {
	return domain.ExportShotlist
}

// Export writes the shot list to path.
func (e *ShotlistExporter) Export(_ context.Context, path string, session *domain.Session) error {
	if session == nil {
		return domain.ErrInvalidInput
	}
	rows := Rows(session)

	return writeFile(path, func(f *os.File) error {
		w := csv.NewWriter(f)
		if err := w.Write(shotlistHeader); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		for i, row := range rows {
			record := make([]string, len(shotlistHeader))
			record[0] = strconv.Itoa(i + 1)
			for j, col := range shotlistHeader[1:] {
				record[j+1] = row[col]
			}
			if err := w.Write(record); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
		}
		w.Flush()
		return w.Error()
	})
}
