// Package transcript normalises SubRip (.srt) and WebVTT (.vtt) caption files.
package transcript

import (
	"bufio"
	"bytes"
	"context"
	"html"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/vmt/internal/core/domain"
	"github.com/custodia-labs/vmt/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

var (
	markupTags   = regexp.MustCompile(`<[^>]*>`)
	assOverrides = regexp.MustCompile(`\{\\[^}]*\}`)
)

// Normaliser handles caption files. Timings, cue identifiers, styling
// and speaker tags are dropped; each caption line becomes a text line.
type Normaliser struct{}

// New creates a new caption normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Name returns "transcript".
func (n *Normaliser) Name() string {
	return "transcript"
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"application/x-subrip", "text/srt", "text/vtt"}
}

// SupportedExtensions returns the file extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".srt", ".vtt"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 80 // Format-specific
}

// Normalise extracts the spoken text from a caption file.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	content := bytes.TrimPrefix(raw.Content, []byte("\xef\xbb\xbf"))
	format := "srt"
	if bytes.HasPrefix(content, []byte("WEBVTT")) || strings.EqualFold(filepath.Ext(raw.URI), ".vtt") {
		format = "vtt"
	}

	lines, cues := captionLines(content)

	tr := raw.ToTranscript(uuid.NewString(), strings.Join(lines, "\n"), format)
	tr.Metadata["cues"] = cues
	return &driven.NormaliseResult{Transcript: tr}, nil
}

// captionLines returns the cleaned caption text and the number of cues seen.
// Lines already shown by the previous cue are dropped, and a line that
// extends the last emitted one replaces it, which collapses roll-up captions.
func captionLines(content []byte) ([]string, int) {
	var (
		lines   []string
		cues    int
		skip    bool // inside a NOTE, STYLE or REGION block
		inCue   bool
		prevCue = map[string]bool{}
		thisCue []string
		scanner = bufio.NewScanner(bytes.NewReader(content))
	)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			skip, inCue = false, false
			continue
		case skip:
			continue
		case strings.HasPrefix(line, "WEBVTT"):
			continue
		case line == "NOTE" || strings.HasPrefix(line, "NOTE ") ||
			line == "STYLE" || line == "REGION":
			skip = true
			continue
		case strings.Contains(line, "-->"):
			inCue = true
			cues++
			prevCue = make(map[string]bool, len(thisCue))
			for _, l := range thisCue {
				prevCue[l] = true
			}
			thisCue = thisCue[:0]
			continue
		case !inCue:
			// Cue identifiers (numeric in SRT, free text in VTT) precede timings.
			continue
		}

		text := cleanCaption(line)
		if text == "" {
			continue
		}
		thisCue = append(thisCue, text)
		if prevCue[text] {
			continue
		}
		if n := len(lines); n > 0 {
			prev := lines[n-1]
			if text == prev {
				continue
			}
			if strings.HasPrefix(text, prev) {
				lines[n-1] = text
				continue
			}
		}
		lines = append(lines, text)
	}
	return lines, cues
}

// cleanCaption removes markup, override codes, speaker dashes and entities.
func cleanCaption(line string) string {
	line = markupTags.ReplaceAllString(line, "")
	line = assOverrides.ReplaceAllString(line, "")
	line = html.UnescapeString(line)
	line = strings.TrimLeft(line, "-– ")
	return strings.Join(strings.Fields(line), " ")
}
