package services

import (
	"context"
	"strings"

	"github.com/custodia-labs/vmt/internal/analysis"
	"github.com/custodia-labs/vmt/internal/core/domain"
	"github.com/custodia-labs/vmt/internal/core/ports/driven"
	"github.com/custodia-labs/vmt/internal/core/ports/driving"
	"github.com/custodia-labs/vmt/internal/logger"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// AnalysisService runs the query-generation pipeline.
type AnalysisService struct {
	lexiconLoader driven.LexiconLoader
	lexiconFile   string
}

// NewAnalysisService creates an analysis service.
// The lexicon loader is optional (can be nil).
func NewAnalysisService(lexiconLoader driven.LexiconLoader) *AnalysisService {
	return &AnalysisService{lexiconLoader: lexiconLoader}
}

// SetLexiconFile sets a lexicon override file applied to every run
// whose options carry no lexicon overrides of their own.
func (s *AnalysisService) SetLexiconFile(path string) {
	s.lexiconFile = path
}

// Analyze runs the full pipeline over text.
func (s *AnalysisService) Analyze(
	ctx context.Context, text string, opts domain.AnalysisOptions,
) (*domain.Analysis, error) {
	logger.Section("Analysis")
	a, err := s.analyzer(ctx, opts)
	if err != nil {
		return nil, err
	}

	done := logger.Timed("analyze")
	result := a.Analyze(text)
	done()

	logger.Debug("Tokens: %d in %d sentences", len(result.Document.Tokens), len(result.Document.Sentences))
	logger.Debug("Keywords: %d, entities: %d, actions: %d", len(result.Keywords), len(result.Entities), len(result.Actions))
	logger.Info("Top emotion: %s, queries: %d", result.TopEmotion().Label, len(result.Queries))
	return result, nil
}

// AnalyzeBatch analyses each non-empty line separately, keeps the top
// domain.BatchMaxQueries queries per line and merges them in order
// without duplicates. Ranks are renumbered over the merged list.
func (s *AnalysisService) AnalyzeBatch(
	ctx context.Context, text string, opts domain.AnalysisOptions,
) ([]domain.Query, error) {
	logger.Section("Batch Analysis")
	opts.MaxQueries = domain.BatchMaxQueries
	a, err := s.analyzer(ctx, opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	out := []domain.Query{}
	blocks := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		blocks++
		for _, q := range a.Queries(line) {
			if seen[q.Text] {
				continue
			}
			seen[q.Text] = true
			q.Rank = len(out) + 1
			out = append(out, q)
		}
	}
	logger.Info("Batch: %d blocks, %d queries", blocks, len(out))
	return out, nil
}

// Lexicons returns the lexicons that opts resolves to.
func (s *AnalysisService) Lexicons(ctx context.Context, opts domain.AnalysisOptions) (*domain.LexiconFile, error) {
	a, err := s.analyzer(ctx, opts)
	if err != nil {
		return nil, err
	}
	lex := a.Lexicons()
	emotions := make(map[string][]string)
	for label, words := range lex.EmotionWords() {
		emotions[string(label)] = words
	}
	return &domain.LexiconFile{
		Stopwords: lex.Stopwords(),
		Emotions:  emotions,
		Entities:  lex.EntityWords(),
		Actions:   lex.ActionWords(),
	}, nil
}

func (s *AnalysisService) analyzer(ctx context.Context, opts domain.AnalysisOptions) (*analysis.Analyzer, error) {
	if s.lexiconFile != "" && s.lexiconLoader != nil && !opts.HasLexiconOverrides() {
		lf, err := s.lexiconLoader.Load(ctx, s.lexiconFile)
		if err != nil {
			return nil, err
		}
		logger.Debug("Lexicon overrides loaded from %s", s.lexiconFile)
		opts = lf.Apply(opts)
	}
	a, err := analysis.New(opts)
	if err != nil {
		logger.Warn("Invalid analysis options: %v", err)
		return nil, err
	}
	return a, nil
}
