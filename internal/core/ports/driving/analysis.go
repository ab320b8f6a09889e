package driving

import (
	"context"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

// AnalysisService turns transcript text into ranked search queries.
type AnalysisService interface {
	// Analyze runs the full pipeline over text.
	// The only error is one wrapping domain.ErrInvalidConfiguration.
	Analyze(ctx context.Context, text string, opts domain.AnalysisOptions) (*domain.Analysis, error)

	// AnalyzeBatch treats each non-empty line as its own block, keeps at most
	// domain.BatchMaxQueries per block and merges the results without duplicates.
	AnalyzeBatch(ctx context.Context, text string, opts domain.AnalysisOptions) ([]domain.Query, error)

	// Lexicons returns the lexicons that opts resolves to.
	Lexicons(ctx context.Context, opts domain.AnalysisOptions) (*domain.LexiconFile, error)
}
