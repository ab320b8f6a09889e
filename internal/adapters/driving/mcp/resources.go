package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

const (
	uriScheme     = "vmt://"
	emotionPrefix = uriScheme + "emotions/"
	jsonMIME      = "application/json"
)

func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "lexicons",
		Name:        "lexicons",
		Description: "Stopwords, emotion words, entity nouns and action verbs used by the analyser",
		MIMEType:    jsonMIME,
	}, s.readLexicons)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: emotionPrefix + "{label}",
		Name:        "emotion-words",
		Description: "Words that signal a specific emotion label",
		MIMEType:    jsonMIME,
	}, s.readEmotion)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "providers",
		Name:        "providers",
		Description: "Registered media providers and whether they are configured",
		MIMEType:    jsonMIME,
	}, s.readProviders)
}

func (s *Server) readLexicons(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	lf, err := s.ports.Analysis.Lexicons(ctx, domain.AnalysisOptions{})
	if err != nil {
		return nil, fmt.Errorf("resolving lexicons: %w", err)
	}
	return jsonResource(req.Params.URI, lf)
}

// readEmotion serves vmt://emotions/{label}. Unknown labels are not found;
// a known label with no words is an empty list.
func (s *Server) readEmotion(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	label, ok := strings.CutPrefix(req.Params.URI, emotionPrefix)
	if !ok || !domain.EmotionLabel(label).IsValid() {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	lf, err := s.ports.Analysis.Lexicons(ctx, domain.AnalysisOptions{})
	if err != nil {
		return nil, fmt.Errorf("resolving lexicons: %w", err)
	}
	words := lf.Emotions[label]
	if words == nil {
		words = []string{}
	}
	return jsonResource(req.Params.URI, words)
}

func (s *Server) readProviders(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	providers := []domain.ProviderStatus{}
	if s.ports.Media != nil {
		providers = append(providers, s.ports.Media.Providers()...)
	}
	return jsonResource(req.Params.URI, providers)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{URI: uri, MIMEType: jsonMIME, Text: string(data)}},
	}, nil
}
