package analysis

import (
	"github.com/custodia-labs/vmt/internal/core/domain"
)

// Analyzer runs the full pipeline with resolved options and lexicons.
// It holds no mutable state and is safe for concurrent use.
type Analyzer struct {
	opts domain.AnalysisOptions
	lex  *Lexicons
}

// New validates opts and resolves its lexicon overrides.
func New(opts domain.AnalysisOptions) (*Analyzer, error) {
	lex, err := NewLexicons(opts)
	if err != nil {
		return nil, err
	}
	return &Analyzer{opts: opts.WithDefaults(), lex: lex}, nil
}

// Options returns the resolved options.
func (a *Analyzer) Options() domain.AnalysisOptions {
	return a.opts
}

// Lexicons returns the lexicons in use.
func (a *Analyzer) Lexicons() *Lexicons {
	return a.lex
}

// Analyze runs every stage over text and returns all intermediate signals.
// Keywords are capped at MaxKeywords; queries at MaxQueries.
func (a *Analyzer) Analyze(text string) *domain.Analysis {
	doc := Tokenize(text, a.lex)
	result := &domain.Analysis{
		Document: &doc,
		Keywords: []domain.Keyword{},
		Entities: []domain.Term{},
		Actions:  []domain.Term{},
		Queries:  []domain.Query{},
	}
	if doc.IsEmpty() {
		result.Emotions = []domain.Emotion{{Label: domain.EmotionNeutral}}
		return result
	}

	keywords := ScoreKeywords(doc, a.opts.MaxPhraseWords)
	if len(keywords) > a.opts.MaxKeywords {
		keywords = keywords[:a.opts.MaxKeywords]
	}
	if keywords != nil {
		result.Keywords = keywords
	}
	if entities := ExtractEntities(doc, a.lex); entities != nil {
		result.Entities = entities
	}
	if actions := ExtractActions(doc, a.lex); actions != nil {
		result.Actions = actions
	}
	result.Emotions = ClassifyTone(doc, a.lex)
	result.Queries = BuildQueries(QueryInput{
		Keywords: result.Keywords,
		Entities: result.Entities,
		Actions:  result.Actions,
		Emotions: result.Emotions,
	}, a.opts)
	return result
}

// Queries runs the pipeline and returns only the ranked queries.
func (a *Analyzer) Queries(text string) []domain.Query {
	return a.Analyze(text).Queries
}

// Analyze is a convenience wrapper building a one-off Analyzer.
func Analyze(text string, opts domain.AnalysisOptions) (*domain.Analysis, error) {
	a, err := New(opts)
	if err != nil {
		return nil, err
	}
	return a.Analyze(text), nil
}

// Queries turns text into ranked, deduplicated search queries.
func Queries(text string, opts domain.AnalysisOptions) ([]domain.Query, error) {
	a, err := New(opts)
	if err != nil {
		return nil, err
	}
	return a.Queries(text), nil
}
