package normalisers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/vmt/internal/core/domain"
	"github.com/custodia-labs/vmt/internal/core/ports/driven"
)

// stubNormaliser records which normaliser handled a document.
type stubNormaliser struct {
	name     string
	mimes    []string
	exts     []string
	priority int
}

func (s *stubNormaliser) Name() string                  { return s.name }
func (s *stubNormaliser) SupportedMIMETypes() []string  { return s.mimes }
func (s *stubNormaliser) SupportedExtensions() []string { return s.exts }
func (s *stubNormaliser) Priority() int                 { return s.priority }

func (s *stubNormaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	return &driven.NormaliseResult{Transcript: domain.Transcript{URI: raw.URI, Format: s.name}}, nil
}

func TestRegistry_PicksHighestPriority(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubNormaliser{name: "low", mimes: []string{"text/plain"}, priority: 5})
	r.Register(&stubNormaliser{name: "high", mimes: []string{"text/plain"}, priority: 50})
	r.Register(&stubNormaliser{name: "tie", mimes: []string{"text/plain"}, priority: 50})

	result, err := r.Normalise(context.Background(), &domain.RawDocument{URI: "a.txt", MIMEType: "text/plain"})

	require.NoError(t, err)
	assert.Equal(t, "high", result.Transcript.Format)
}

func TestRegistry_MatchesByExtension(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubNormaliser{name: "plain", mimes: []string{"text/plain"}, priority: 5})
	r.Register(&stubNormaliser{name: "captions", exts: []string{".vtt"}, priority: 80})

	result, err := r.Normalise(context.Background(), &domain.RawDocument{URI: "clip.VTT", MIMEType: "text/plain"})

	require.NoError(t, err)
	assert.Equal(t, "captions", result.Transcript.Format)
}

func TestRegistry_Unsupported(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubNormaliser{name: "plain", mimes: []string{"text/plain"}, priority: 5})

	_, err := r.Normalise(context.Background(), &domain.RawDocument{URI: "a.pdf", MIMEType: "application/pdf"})

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestRegistry_NilDocument(t *testing.T) {
	_, err := NewRegistry().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDefaultRegistry(t *testing.T) {
	r := NewDefaultRegistry()

	assert.Contains(t, r.SupportedMIMETypes(), "text/vtt")
	assert.Contains(t, r.SupportedMIMETypes(), "application/vnd.opentimelineio+json")
	assert.Equal(t, []string{".docx", ".log", ".markdown", ".md", ".otio", ".srt", ".text", ".txt", ".vtt"}, r.SupportedExtensions())

	tests := []struct {
		uri    string
		mime   string
		format string
	}{
		{uri: "notes.txt", mime: "text/plain", format: "text"},
		{uri: "notes.md", mime: "text/markdown", format: "markdown"},
		{uri: "captions.srt", mime: "application/x-subrip", format: "srt"},
		{uri: "captions.vtt", mime: "text/vtt", format: "vtt"},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			result, err := r.Normalise(context.Background(), &domain.RawDocument{
				URI: tt.uri, MIMEType: tt.mime, Content: []byte("hello"),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.format, result.Transcript.Format)
		})
	}
}
