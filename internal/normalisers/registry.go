package normalisers

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/vmt/internal/core/domain"
	"github.com/custodia-labs/vmt/internal/core/ports/driven"
	"github.com/custodia-labs/vmt/internal/logger"
	"github.com/custodia-labs/vmt/internal/normalisers/docx"
	"github.com/custodia-labs/vmt/internal/normalisers/markdown"
	"github.com/custodia-labs/vmt/internal/normalisers/otio"
	"github.com/custodia-labs/vmt/internal/normalisers/plaintext"
	"github.com/custodia-labs/vmt/internal/normalisers/transcript"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry dispatches raw documents to the highest-priority normaliser
// claiming their MIME type or file extension. Ties keep registration order.
type Registry struct {
	mu          sync.RWMutex
	normalisers []driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// NewDefaultRegistry creates a registry with all built-in normalisers.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

// RegisterDefaults registers all built-in normalisers with the registry.
func RegisterDefaults(r *Registry) {
	r.Register(plaintext.New())
	r.Register(markdown.New())
	r.Register(docx.New())
	r.Register(transcript.New())
	r.Register(otio.New())
}

// Register adds a normaliser.
func (r *Registry) Register(n driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.normalisers = append(r.normalisers, n)
}

// Normalise selects a normaliser for raw and runs it.
func (r *Registry) Normalise(ctx context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	n := r.find(raw)
	if n == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, describe(raw))
	}
	logger.Debug("Normaliser %s selected for %s", n.Name(), describe(raw))
	return n.Normalise(ctx, raw)
}

// SupportedMIMETypes returns every MIME type any normaliser handles, sorted.
func (r *Registry) SupportedMIMETypes() []string {
	return r.collect(driven.Normaliser.SupportedMIMETypes)
}

// SupportedExtensions returns every file extension any normaliser handles, sorted.
func (r *Registry) SupportedExtensions() []string {
	return r.collect(driven.Normaliser.SupportedExtensions)
}

func (r *Registry) collect(list func(driven.Normaliser) []string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]bool)
	var out []string
	for _, n := range r.normalisers {
		for _, v := range list(n) {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	sort.Strings(out)
	return out
}

func (r *Registry) find(raw *domain.RawDocument) driven.Normaliser {
	mimeType := strings.ToLower(raw.MIMEType)
	ext := extension(raw)

	r.mu.RLock()
	defer r.mu.RUnlock()
	var best driven.Normaliser
	for _, n := range r.normalisers {
		if !contains(n.SupportedMIMETypes(), mimeType) && !contains(n.SupportedExtensions(), ext) {
			continue
		}
		if best == nil || n.Priority() > best.Priority() {
			best = n
		}
	}
	return best
}

func extension(raw *domain.RawDocument) string {
	if ext, ok := raw.Metadata["extension"].(string); ok && ext != "" {
		return strings.ToLower(ext)
	}
	return strings.ToLower(filepath.Ext(raw.URI))
}

func describe(raw *domain.RawDocument) string {
	if ext := extension(raw); ext != "" {
		return fmt.Sprintf("%s (%s)", raw.MIMEType, ext)
	}
	return raw.MIMEType
}

func contains(values []string, v string) bool {
	if v == "" {
		return false
	}
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
