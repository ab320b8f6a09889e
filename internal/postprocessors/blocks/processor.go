// Package blocks splits transcript text into analysis blocks, one per line.
package blocks

import (
	"context"
	"strings"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

// DefaultMaxChars is the longest block kept whole.
const DefaultMaxChars = 600

// Processor splits transcript text into non-empty lines and wraps
// over-long lines at sentence ends. It implements the PostProcessor interface.
type Processor struct {
	maxChars int
}

// Option configures the block processor.
type Option func(*Processor)

// WithMaxChars sets the longest block in bytes.
func WithMaxChars(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.maxChars = n
		}
	}
}

// New creates a new block processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{maxChars: DefaultMaxChars}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "blocks"
}

// Process splits the transcript text into blocks.
// Input lines are ignored; this processor creates new lines from the text.
func (p *Processor) Process(_ context.Context, t *domain.Transcript, _ []string) ([]string, error) {
	var out []string
	for _, line := range strings.Split(t.Text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		out = append(out, p.wrap(line)...)
	}
	return out, nil
}

// wrap breaks line into pieces no longer than maxChars, preferring
// sentence ends, then spaces. A single word longer than maxChars is kept whole.
func (p *Processor) wrap(line string) []string {
	var out []string
	for len(line) > p.maxChars {
		cut := lastSentenceEnd(line[:p.maxChars+1])
		if cut <= 0 {
			cut = strings.LastIndexByte(line[:p.maxChars+1], ' ')
		}
		if cut <= 0 {
			cut = strings.IndexByte(line, ' ')
			if cut < 0 {
				break
			}
		}
		out = append(out, strings.TrimSpace(line[:cut]))
		line = strings.TrimSpace(line[cut:])
	}
	if line != "" {
		out = append(out, line)
	}
	return out
}

// lastSentenceEnd returns the index just after the last ". ", "! " or "? " in s.
func lastSentenceEnd(s string) int {
	best := -1
	for _, mark := range []string{". ", "! ", "? "} {
		if i := strings.LastIndex(s, mark); i >= 0 && i+1 > best {
			best = i + 1
		}
	}
	return best
}
