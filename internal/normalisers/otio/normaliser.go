// Package otio normalises OpenTimelineIO (.otio) edit timelines. Each clip
// becomes one cue line of the form "label - note", so an editor's clip
// names and notes can be analysed like a transcript.
package otio

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/custodia-labs/vmt/internal/core/domain"
	"github.com/custodia-labs/vmt/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles OTIO timeline JSON.
type Normaliser struct{}

// New creates a new OTIO normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Name returns "otio".
func (n *Normaliser) Name() string {
	return "otio"
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"application/vnd.opentimelineio+json"}
}

// SupportedExtensions returns the file extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".otio"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 80 // Format-specific
}

// Normalise extracts one line per clip in track order.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	cues, title, err := ExtractCues(raw.Content)
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(cues))
	for _, c := range cues {
		if line := strings.TrimSpace(c.Line()); line != "" {
			lines = append(lines, line)
		}
	}

	tr := raw.ToTranscript(uuid.NewString(), strings.Join(lines, "\n"), "otio")
	tr.Metadata["cues"] = len(cues)
	if title != "" {
		tr.Title = title
	}
	return &driven.NormaliseResult{Transcript: tr}, nil
}

// ExtractCues returns the clips of every track of a timeline, in track
// order, with Start set to the clip's position on its track in seconds.
// Clips without a name fall back to metadata.name, then "Clip".
func ExtractCues(content []byte) ([]domain.Cue, string, error) {
	if !gjson.ValidBytes(content) {
		return nil, "", fmt.Errorf("parse timeline: %w", domain.ErrInvalidInput)
	}
	root := gjson.ParseBytes(content)
	if !strings.HasPrefix(root.Get("OTIO_SCHEMA").String(), "Timeline.") {
		return nil, "", fmt.Errorf("parse timeline: not an OTIO timeline: %w", domain.ErrInvalidInput)
	}

	var cues []domain.Cue
	root.Get("tracks.children").ForEach(func(_, track gjson.Result) bool {
		var position float64
		track.Get("children").ForEach(func(_, item gjson.Result) bool {
			duration := seconds(item.Get("source_range.duration"))
			if strings.HasPrefix(item.Get("OTIO_SCHEMA").String(), "Clip.") {
				label := item.Get("name").String()
				if label == "" {
					label = item.Get("metadata.name").String()
				}
				if label == "" {
					label = "Clip"
				}
				cues = append(cues, domain.Cue{
					Label: label,
					Note:  item.Get("metadata.note").String(),
					Start: position,
				})
			}
			position += duration
			return true
		})
		return true
	})
	return cues, root.Get("name").String(), nil
}

// seconds converts an OTIO RationalTime to seconds.
func seconds(rt gjson.Result) float64 {
	rate := rt.Get("rate").Float()
	if rate <= 0 {
		return 0
	}
	return rt.Get("value").Float() / rate
}
