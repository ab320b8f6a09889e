package mcp

import (
	"context"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

// mockAnalysisService is a mock implementation of driving.AnalysisService.
type mockAnalysisService struct {
	result   *domain.Analysis
	batch    []domain.Query
	lexicons *domain.LexiconFile
	err      error

	lastOpts domain.AnalysisOptions
}

func (m *mockAnalysisService) Analyze(
	_ context.Context, _ string, opts domain.AnalysisOptions,
) (*domain.Analysis, error) {
	m.lastOpts = opts
	return m.result, m.err
}

func (m *mockAnalysisService) AnalyzeBatch(
	_ context.Context, _ string, opts domain.AnalysisOptions,
) ([]domain.Query, error) {
	m.lastOpts = opts
	return m.batch, m.err
}

func (m *mockAnalysisService) Lexicons(_ context.Context, _ domain.AnalysisOptions) (*domain.LexiconFile, error) {
	return m.lexicons, m.err
}

// mockMediaService is a mock implementation of driving.MediaService.
type mockMediaService struct {
	results  []domain.MediaResult
	statuses []domain.ProviderStatus
	err      error

	lastOpts    domain.MediaSearchOptions
	lastQueries []string
}

func (m *mockMediaService) Search(
	_ context.Context, query string, opts domain.MediaSearchOptions,
) ([]domain.MediaResult, error) {
	m.lastOpts = opts
	m.lastQueries = []string{query}
	return m.results, m.err
}

func (m *mockMediaService) SearchAll(
	_ context.Context, queries []string, opts domain.MediaSearchOptions,
) ([]domain.QueryResults, error) {
	m.lastOpts = opts
	m.lastQueries = queries
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.QueryResults, 0, len(queries))
	for _, q := range queries {
		out = append(out, domain.QueryResults{Query: q, Results: m.results})
	}
	return out, nil
}

func (m *mockMediaService) Providers() []domain.ProviderStatus {
	return m.statuses
}

func sampleAnalysis() *domain.Analysis {
	return &domain.Analysis{
		Keywords: []domain.Keyword{{Words: []string{"misty", "forest"}, Score: 4}},
		Entities: []domain.Term{{Text: "deer", Category: domain.TermEntity}},
		Actions:  []domain.Term{{Text: "walks", Category: domain.TermAction}},
		Emotions: []domain.Emotion{{Label: domain.EmotionCalm, Count: 1}},
		Queries: []domain.Query{
			{Text: "misty forest walks calm", Topic: "misty forest", Action: "walks", Emotion: domain.EmotionCalm, Score: 5.5, Rank: 1},
			{Text: "misty forest", Topic: "misty forest", Score: 4, Rank: 2},
		},
	}
}
