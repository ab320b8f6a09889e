// Package dedupe drops repeated transcript lines.
package dedupe

import (
	"context"
	"strings"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

// Processor removes a line when it repeats the line before it, ignoring
// case and spacing. Non-adjacent repeats are kept because repetition is a
// signal for keyword scoring.
type Processor struct{}

// New creates a new dedupe processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "dedupe"
}

// Process filters lines. A nil input falls back to the transcript text.
func (p *Processor) Process(_ context.Context, t *domain.Transcript, lines []string) ([]string, error) {
	if lines == nil && t.Text != "" {
		lines = strings.Split(t.Text, "\n")
	}

	out := make([]string, 0, len(lines))
	var prev string
	for _, line := range lines {
		key := strings.ToLower(strings.Join(strings.Fields(line), " "))
		if key == "" || key == prev {
			continue
		}
		prev = key
		out = append(out, line)
	}
	return out, nil
}
