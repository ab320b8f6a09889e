package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCue_Line(t *testing.T) {
	tests := []struct {
		name string
		cue  Cue
		want string
	}{
		{"label and note", Cue{Label: "Opening", Note: "sunrise over hills"}, "Opening - sunrise over hills"},
		{"label only", Cue{Label: "Opening"}, "Opening"},
		{"note only", Cue{Note: "sunrise"}, "sunrise"},
		{"empty", Cue{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cue.Line())
		})
	}
}

func TestExportFormat(t *testing.T) {
	for _, f := range AllExportFormats() {
		assert.True(t, f.IsValid(), f)
		assert.NotEmpty(t, f.Extension())
	}
	assert.False(t, ExportFormat("xlsx").IsValid())
	assert.Equal(t, "_shotlist.csv", ExportShotlist.Extension())
}

func TestRawDocument_Title(t *testing.T) {
	tests := []struct {
		name string
		raw  RawDocument
		want string
	}{
		{"file name", RawDocument{URI: "/scripts/deer_at-dawn.txt"}, "deer at dawn"},
		{"metadata wins", RawDocument{URI: "a.txt", Metadata: map[string]any{"title": "Pasted"}}, "Pasted"},
		{"empty metadata title", RawDocument{URI: "a.txt", Metadata: map[string]any{"title": ""}}, "a"},
		{"stdin", RawDocument{URI: "-"}, "stdin"},
		{"no uri", RawDocument{}, "stdin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.raw.Title())
		})
	}
}

func TestRawDocument_ToTranscript(t *testing.T) {
	raw := &RawDocument{
		URI:      "notes.md",
		MIMEType: "text/markdown",
		Metadata: map[string]any{"extension": ".md"},
	}

	tr := raw.ToTranscript("id-1", "text", "markdown")

	assert.Equal(t, "id-1", tr.ID)
	assert.Equal(t, "notes.md", tr.URI)
	assert.Equal(t, "notes", tr.Title)
	assert.Equal(t, "markdown", tr.Format)
	assert.Equal(t, "text/markdown", tr.Metadata["mime_type"])
	assert.Equal(t, ".md", tr.Metadata["extension"])
	assert.NotContains(t, raw.Metadata, "mime_type")
}
