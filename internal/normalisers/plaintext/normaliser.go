// Package plaintext is the fallback normaliser for text files and stdin.
package plaintext

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/vmt/internal/core/domain"
	"github.com/custodia-labs/vmt/internal/core/ports/driven"
)

var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser passes text through with the byte order mark removed and
// line endings unified to "\n".
type Normaliser struct{}

func New() *Normaliser { return &Normaliser{} }

func (n *Normaliser) Name() string { return "plaintext" }

func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/plain", "text/csv", "text/x-log"}
}

func (n *Normaliser) SupportedExtensions() []string {
	return []string{".txt", ".text", ".log"}
}

// Priority is the lowest of the built-ins so any specific format wins.
func (n *Normaliser) Priority() int { return 5 }

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	text := lineEndings.Replace(strings.TrimPrefix(string(raw.Content), "\ufeff"))
	return &driven.NormaliseResult{
		Transcript: raw.ToTranscript(uuid.NewString(), strings.TrimSpace(text), "text"),
	}, nil
}
