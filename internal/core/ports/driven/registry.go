package driven

import (
	"context"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

// NormaliserRegistry routes an input file to the normaliser that claims
// it. A MIME type match or a file extension match both qualify; among the
// candidates the highest Priority wins. Inputs nothing claims fail with
// domain.ErrUnsupportedType.
type NormaliserRegistry interface {
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
	Register(normaliser Normaliser)

	// SupportedMIMETypes and SupportedExtensions list what the registered
	// normalisers accept, deduplicated and sorted.
	SupportedMIMETypes() []string
	SupportedExtensions() []string
}
