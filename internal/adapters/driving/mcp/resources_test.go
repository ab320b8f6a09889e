package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func testLexicons() *domain.LexiconFile {
	return &domain.LexiconFile{
		Stopwords: []string{"the"},
		Emotions:  map[string][]string{"calm": {"quiet", "serene"}},
		Entities:  []string{"deer"},
		Actions:   []string{"walk"},
	}
}

func TestReadLexicons(t *testing.T) {
	server, err := NewServer(&Ports{Analysis: &mockAnalysisService{lexicons: testLexicons()}})
	require.NoError(t, err)

	result, err := server.readLexicons(context.Background(), readRequest("vmt://lexicons"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	assert.Contains(t, result.Contents[0].Text, `"serene"`)
	assert.Contains(t, result.Contents[0].Text, `"deer"`)
}

func TestReadLexicons_Error(t *testing.T) {
	server, err := NewServer(&Ports{Analysis: &mockAnalysisService{err: errors.New("bad lexicon")}})
	require.NoError(t, err)

	_, err = server.readLexicons(context.Background(), readRequest("vmt://lexicons"))

	assert.ErrorContains(t, err, "resolving lexicons")
}

func TestReadEmotion(t *testing.T) {
	server, err := NewServer(&Ports{Analysis: &mockAnalysisService{lexicons: testLexicons()}})
	require.NoError(t, err)

	tests := []struct {
		uri     string
		want    string
		wantErr bool
	}{
		{uri: "vmt://emotions/calm", want: "quiet"},
		{uri: "vmt://emotions/fear", want: "[]"},
		{uri: "vmt://emotions/boredom", wantErr: true},
		{uri: "file://emotions/calm", wantErr: true},
		{uri: "vmt://emotions/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			result, err := server.readEmotion(context.Background(), readRequest(tt.uri))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, result.Contents[0].Text, tt.want)
		})
	}
}

func TestReadProviders(t *testing.T) {
	t.Run("without media service", func(t *testing.T) {
		server, err := NewServer(&Ports{Analysis: &mockAnalysisService{}})
		require.NoError(t, err)

		result, err := server.readProviders(context.Background(), readRequest("vmt://providers"))

		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("lists provider status", func(t *testing.T) {
		media := &mockMediaService{statuses: []domain.ProviderStatus{
			{Name: "pexels", Enabled: true, MediaTypes: []domain.MediaType{domain.MediaPhoto, domain.MediaVideo}},
		}}
		server, err := NewServer(&Ports{Analysis: &mockAnalysisService{}, Media: media})
		require.NoError(t, err)

		result, err := server.readProviders(context.Background(), readRequest("vmt://providers"))

		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, `"pexels"`)
		assert.Contains(t, result.Contents[0].Text, `"video"`)
	})
}

func TestResources_ReadOverSession(t *testing.T) {
	server, err := NewServer(&Ports{Analysis: &mockAnalysisService{lexicons: testLexicons()}})
	require.NoError(t, err)
	session := connect(t, server)
	ctx := context.Background()

	listed, err := session.ListResources(ctx, nil)
	require.NoError(t, err)
	uris := make([]string, 0, len(listed.Resources))
	for _, r := range listed.Resources {
		uris = append(uris, r.URI)
	}
	assert.ElementsMatch(t, []string{"vmt://lexicons", "vmt://providers"}, uris)

	res, err := session.ReadResource(ctx, &mcp.ReadResourceParams{URI: "vmt://emotions/calm"})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Contains(t, res.Contents[0].Text, "serene")
}
