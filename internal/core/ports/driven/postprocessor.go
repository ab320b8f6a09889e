package driven

import (
	"context"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

// PostProcessor cleans transcript text after normalisation.
// PostProcessors are chained in a pipeline (e.g., block splitting, dedupe).
type PostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process takes a transcript and returns its lines.
	// If the processor creates lines (e.g., blocks), it receives nil and splits the text.
	// If the processor modifies lines (e.g., dedupe), it receives and returns lines.
	Process(ctx context.Context, t *domain.Transcript, lines []string) ([]string, error)
}

// PostProcessorPipeline chains multiple PostProcessors.
type PostProcessorPipeline interface {
	// Process runs the transcript through all processors in order.
	// Returns the final lines after all processing.
	Process(ctx context.Context, t *domain.Transcript) ([]string, error)
}
