package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// connect returns a client session talking to s over in-memory transports.
func connect(t *testing.T, s *Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	serverSession, err := s.server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test", Version: "v0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func listTools(t *testing.T, s *Server) []string {
	t.Helper()
	res, err := connect(t, s).ListTools(context.Background(), nil)
	require.NoError(t, err)
	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	return names
}

func TestNewServer(t *testing.T) {
	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{name: "nil ports", ports: nil, wantErr: ErrMissingAnalysisService},
		{name: "media only", ports: &Ports{Media: &mockMediaService{}}, wantErr: ErrMissingAnalysisService},
		{name: "analysis only", ports: &Ports{Analysis: &mockAnalysisService{}}},
		{name: "analysis and media", ports: &Ports{Analysis: &mockAnalysisService{}, Media: &mockMediaService{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, err := NewServer(tt.ports)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, server)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, server)
		})
	}
}

func TestNewServer_Version(t *testing.T) {
	server, err := NewServer(&Ports{Analysis: &mockAnalysisService{}})
	require.NoError(t, err)
	assert.Equal(t, DefaultVersion, server.Version())

	server, err = NewServer(&Ports{Analysis: &mockAnalysisService{}}, WithVersion("1.4.0"))
	require.NoError(t, err)
	assert.Equal(t, "1.4.0", server.Version())

	server, err = NewServer(&Ports{Analysis: &mockAnalysisService{}}, WithVersion(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultVersion, server.Version())
}

func TestServer_Tools(t *testing.T) {
	t.Run("analysis only", func(t *testing.T) {
		server, err := NewServer(&Ports{Analysis: &mockAnalysisService{}})
		require.NoError(t, err)

		assert.Equal(t, []string{"analyze_text"}, listTools(t, server))
	})

	t.Run("with media", func(t *testing.T) {
		server, err := NewServer(&Ports{Analysis: &mockAnalysisService{}, Media: &mockMediaService{}})
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{"analyze_text", "search_media", "suggest_media"}, listTools(t, server))
	})
}
