package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

// LoaderService reads input files into transcript text.
type LoaderService interface {
	// LoadFile reads and normalises the file at path.
	LoadFile(ctx context.Context, path string) (*domain.Transcript, error)

	// LoadReader normalises r, using name to pick the format.
	LoadReader(ctx context.Context, name string, r io.Reader) (*domain.Transcript, error)
}
