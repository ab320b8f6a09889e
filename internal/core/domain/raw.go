package domain

import (
	"maps"
	"path/filepath"
	"strings"
)

// RawDocument represents an input file before normalisation.
type RawDocument struct {
	// URI is the original location (file path or "-" for stdin).
	URI string

	// MIMEType is the content type (e.g., "text/vtt").
	MIMEType string

	// Content is the raw bytes.
	Content []byte

	// Metadata contains loader-specific key-value pairs.
	Metadata map[string]any
}

// Title returns the "title" metadata entry, or the file name without its
// extension with underscores and hyphens read as spaces. Standard input is
// titled "stdin".
func (r *RawDocument) Title() string {
	if title, ok := r.Metadata["title"].(string); ok && title != "" {
		return title
	}
	if r.URI == "" || r.URI == "-" {
		return "stdin"
	}
	name := filepath.Base(r.URI)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return strings.NewReplacer("_", " ", "-", " ").Replace(name)
}

// ToTranscript wraps text extracted from r. The transcript carries a copy
// of r's metadata with mime_type added; r itself is not modified.
func (r *RawDocument) ToTranscript(id, text, format string) Transcript {
	meta := make(map[string]any, len(r.Metadata)+1)
	maps.Copy(meta, r.Metadata)
	meta["mime_type"] = r.MIMEType
	return Transcript{
		ID:       id,
		URI:      r.URI,
		Title:    r.Title(),
		Text:     text,
		Format:   format,
		Metadata: meta,
	}
}

// Transcript is analysable text extracted from a RawDocument.
type Transcript struct {
	ID       string
	URI      string
	Title    string
	Text     string
	Format   string
	Metadata map[string]any
}

// Cue is one labelled marker of an edit timeline.
type Cue struct {
	Label string
	Note  string
	Start float64
}

// Line renders the cue as analysable text.
func (c Cue) Line() string {
	switch {
	case c.Label != "" && c.Note != "":
		return c.Label + " - " + c.Note
	case c.Label != "":
		return c.Label
	default:
		return c.Note
	}
}

// ExportFormat names an export target.
type ExportFormat string

// Export formats.
const (
	ExportCSV      ExportFormat = "csv"
	ExportJSON     ExportFormat = "json"
	ExportShotlist ExportFormat = "shotlist"
	ExportDOCX     ExportFormat = "docx"
	ExportSQLite   ExportFormat = "sqlite"
)

// AllExportFormats returns the formats in display order.
func AllExportFormats() []ExportFormat {
	return []ExportFormat{ExportCSV, ExportJSON, ExportShotlist, ExportDOCX, ExportSQLite}
}

// Extension returns the file extension for the format.
func (f ExportFormat) Extension() string {
	switch f {
	case ExportCSV:
		return ".csv"
	case ExportJSON:
		return ".json"
	case ExportShotlist:
		return "_shotlist.csv"
	case ExportDOCX:
		return ".docx"
	case ExportSQLite:
		return ".db"
	default:
		return ""
	}
}

// IsValid returns true if the format is recognised.
func (f ExportFormat) IsValid() bool {
	return f.Extension() != ""
}
