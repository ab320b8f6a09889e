package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

// defaultSuggestQueries is how many queries suggest_media searches.
const defaultSuggestQueries = 3

// AnalyzeInput is the input schema for the analyze_text tool.
type AnalyzeInput struct {
	Text       string `json:"text" jsonschema:"transcript or script text to analyse"`
	Batch      bool   `json:"batch,omitempty" jsonschema:"analyse each line separately and merge the queries"`
	MaxQueries int    `json:"max_queries,omitempty" jsonschema:"maximum number of queries (default 12)"`
}

// AnalyzeOutput is the output schema for the analyze_text tool.
type AnalyzeOutput struct {
	Queries  []QueryOutput `json:"queries"`
	Keywords []string      `json:"keywords,omitempty"`
	Entities []string      `json:"entities,omitempty"`
	Actions  []string      `json:"actions,omitempty"`
	Emotion  string        `json:"emotion,omitempty"`
	Count    int           `json:"count"`
}

// QueryOutput represents a single generated query.
type QueryOutput struct {
	Query   string  `json:"query"`
	Rank    int     `json:"rank"`
	Score   float64 `json:"score"`
	Topic   string  `json:"topic"`
	Action  string  `json:"action,omitempty"`
	Emotion string  `json:"emotion,omitempty"`
}

// SearchMediaInput is the input schema for the search_media tool.
type SearchMediaInput struct {
	Query     string   `json:"query" jsonschema:"the stock media search query"`
	MediaType string   `json:"media_type,omitempty" jsonschema:"photo or video (default photo)"`
	Limit     int      `json:"limit,omitempty" jsonschema:"results per provider (default 8)"`
	Providers []string `json:"providers,omitempty" jsonschema:"restrict to these providers: pexels, pixabay, unsplash"`
}

// SearchMediaOutput is the output schema for the search_media tool.
type SearchMediaOutput struct {
	Results []MediaOutput `json:"results"`
	Count   int           `json:"count"`
}

// MediaOutput represents a single provider result.
type MediaOutput struct {
	Query     string  `json:"query"`
	Title     string  `json:"title"`
	Provider  string  `json:"provider"`
	URL       string  `json:"url"`
	Thumb     string  `json:"thumb,omitempty"`
	Author    string  `json:"author,omitempty"`
	License   string  `json:"license,omitempty"`
	MediaType string  `json:"media_type,omitempty"`
	Duration  float64 `json:"duration,omitempty"`
	Error     bool    `json:"error,omitempty"`
}

// SuggestMediaInput is the input schema for the suggest_media tool.
type SuggestMediaInput struct {
	Text      string `json:"text" jsonschema:"transcript or script text to find media for"`
	Queries   int    `json:"queries,omitempty" jsonschema:"number of top queries to search (default 3)"`
	MediaType string `json:"media_type,omitempty" jsonschema:"photo or video (default photo)"`
	Limit     int    `json:"limit,omitempty" jsonschema:"results per provider and query (default 8)"`
}

// SuggestMediaOutput is the output schema for the suggest_media tool.
type SuggestMediaOutput struct {
	Suggestions []SuggestionOutput `json:"suggestions"`
	Count       int                `json:"count"`
}

// SuggestionOutput groups the results found for one generated query.
type SuggestionOutput struct {
	Query   string        `json:"query"`
	Results []MediaOutput `json:"results"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_text",
		Description: "Generate ranked stock-media search queries from transcript text",
	}, s.handleAnalyze)

	if s.ports.Media == nil {
		return
	}
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_media",
		Description: "Search stock photo and video providers for a query",
	}, s.handleSearchMedia)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "suggest_media",
		Description: "Generate queries from text and search providers for the top ones",
	}, s.handleSuggestMedia)
}

// handleAnalyze handles the analyze_text tool invocation.
func (s *Server) handleAnalyze(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeInput,
) (*mcp.CallToolResult, AnalyzeOutput, error) {
	opts := domain.AnalysisOptions{MaxQueries: input.MaxQueries}

	if input.Batch {
		queries, err := s.ports.Analysis.AnalyzeBatch(ctx, input.Text, opts)
		if err != nil {
			return nil, AnalyzeOutput{}, err
		}
		out := AnalyzeOutput{Queries: toQueryOutputs(queries), Count: len(queries)}
		return nil, out, nil
	}

	result, err := s.ports.Analysis.Analyze(ctx, input.Text, opts)
	if err != nil {
		return nil, AnalyzeOutput{}, err
	}
	out := AnalyzeOutput{
		Queries:  toQueryOutputs(result.Queries),
		Entities: termTexts(result.Entities),
		Actions:  termTexts(result.Actions),
		Emotion:  string(result.TopEmotion().Label),
		Count:    len(result.Queries),
	}
	for _, k := range result.Keywords {
		out.Keywords = append(out.Keywords, k.Phrase())
	}
	return nil, out, nil
}

// handleSearchMedia handles the search_media tool invocation.
func (s *Server) handleSearchMedia(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchMediaInput,
) (*mcp.CallToolResult, SearchMediaOutput, error) {
	opts, err := searchOptions(input.MediaType, input.Limit)
	if err != nil {
		return nil, SearchMediaOutput{}, err
	}
	opts.Providers = input.Providers

	results, err := s.ports.Media.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchMediaOutput{}, err
	}
	out := SearchMediaOutput{Results: toMediaOutputs(results), Count: len(results)}
	return nil, out, nil
}

// handleSuggestMedia handles the suggest_media tool invocation.
func (s *Server) handleSuggestMedia(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SuggestMediaInput,
) (*mcp.CallToolResult, SuggestMediaOutput, error) {
	n := input.Queries
	if n <= 0 {
		n = defaultSuggestQueries
	}
	opts, err := searchOptions(input.MediaType, input.Limit)
	if err != nil {
		return nil, SuggestMediaOutput{}, err
	}

	result, err := s.ports.Analysis.Analyze(ctx, input.Text, domain.AnalysisOptions{MaxQueries: n})
	if err != nil {
		return nil, SuggestMediaOutput{}, err
	}
	grouped, err := s.ports.Media.SearchAll(ctx, result.QueryTexts(), opts)
	if err != nil {
		return nil, SuggestMediaOutput{}, err
	}

	out := SuggestMediaOutput{Suggestions: make([]SuggestionOutput, 0, len(grouped))}
	for _, g := range grouped {
		out.Suggestions = append(out.Suggestions, SuggestionOutput{Query: g.Query, Results: toMediaOutputs(g.Results)})
	}
	out.Count = len(out.Suggestions)
	return nil, out, nil
}

func searchOptions(mediaType string, limit int) (domain.MediaSearchOptions, error) {
	mt, err := domain.ParseMediaType(mediaType)
	if err != nil {
		return domain.MediaSearchOptions{}, fmt.Errorf("media_type %q: %w", mediaType, err)
	}
	if limit < 0 {
		return domain.MediaSearchOptions{}, errors.New("limit must not be negative")
	}
	return domain.MediaSearchOptions{Limit: limit, MediaType: mt}, nil
}

func toQueryOutputs(queries []domain.Query) []QueryOutput {
	out := make([]QueryOutput, len(queries))
	for i, q := range queries {
		out[i] = QueryOutput{
			Query:   q.Text,
			Rank:    q.Rank,
			Score:   q.Score,
			Topic:   q.Topic,
			Action:  q.Action,
			Emotion: string(q.Emotion),
		}
	}
	return out
}

func toMediaOutputs(results []domain.MediaResult) []MediaOutput {
	out := make([]MediaOutput, len(results))
	for i := range results {
		r := &results[i]
		out[i] = MediaOutput{
			Query:     r.Query,
			Title:     r.Title,
			Provider:  r.Provider,
			URL:       r.URL,
			Thumb:     r.Thumb,
			Author:    r.Author,
			License:   r.License,
			MediaType: string(r.MediaType),
			Duration:  r.Duration,
			Error:     r.Error,
		}
	}
	return out
}

func termTexts(terms []domain.Term) []string {
	if len(terms) == 0 {
		return nil
	}
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = t.Text
	}
	return out
}
