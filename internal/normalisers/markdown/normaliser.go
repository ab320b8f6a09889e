// Package markdown reduces Markdown documents to their prose.
package markdown

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/vmt/internal/core/domain"
	"github.com/custodia-labs/vmt/internal/core/ports/driven"
)

var _ driven.Normaliser = (*Normaliser)(nil)

// markup is applied in order. Fenced code goes before inline code, and
// images before links, so the shorter patterns never see a partial match.
var markup = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(?s)\A---\n.*?\n---\n`), ""},
	{regexp.MustCompile("(?s)```.*?```"), ""},
	{regexp.MustCompile("`([^`]+)`"), "$1"},
	{regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`), ""},
	{regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`), "$1"},
	{regexp.MustCompile(`(?m)^#{1,6}\s+`), ""},
	{regexp.MustCompile(`(\*{1,3}|_{2,3})([^*_\n]+)(\*{1,3}|_{2,3})`), "$2"},
	{regexp.MustCompile(`(?m)^>\s*`), ""},
	{regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`), ""},
	{regexp.MustCompile(`(?m)^\s*(?:[-*+]|\d+\.)\s+`), ""},
	{regexp.MustCompile(`\n{3,}`), "\n\n"},
}

// Normaliser handles Markdown scripts and notes.
type Normaliser struct{}

func New() *Normaliser { return &Normaliser{} }

func (n *Normaliser) Name() string { return "markdown" }

func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/markdown", "text/x-markdown"}
}

func (n *Normaliser) SupportedExtensions() []string {
	return []string{".md", ".markdown"}
}

// Priority sits above plaintext, which also claims some .md uploads as
// text/plain.
func (n *Normaliser) Priority() int { return 50 }

// Normalise strips markup so that only prose reaches the analyser.
// Capitalisation is preserved because the entity extractor relies on it.
// The first level-one heading, if any, becomes the title.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	content := strings.ReplaceAll(string(raw.Content), "\r\n", "\n")
	tr := raw.ToTranscript(uuid.NewString(), stripMarkdown(content), "markdown")
	if h1 := firstHeading(content); h1 != "" {
		tr.Title = h1
	}
	return &driven.NormaliseResult{Transcript: tr}, nil
}

func firstHeading(content string) string {
	for line := range strings.Lines(content) {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(line), "# "); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}

// stripMarkdown removes formatting. Headings and list items stay on their
// own lines, which sentence splitting treats as boundaries.
func stripMarkdown(content string) string {
	for _, m := range markup {
		content = m.re.ReplaceAllString(content, m.repl)
	}
	return strings.TrimSpace(content)
}
