package cli

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/vmt/internal/adapters/driving/mcp"
)

var (
	mcpPort int
	mcpHost string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve vmt to MCP clients",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server",
	Long: `Run a Model Context Protocol server so an assistant can analyse
scripts and search stock media through vmt.

The server speaks JSON-RPC over stdio unless --port is given, in which
case it serves the streamable HTTP transport on --host:--port.

Tools:
  analyze_text   ranked search queries for a transcript
  search_media   search the configured stock providers
  suggest_media  analyse a transcript and search its top queries

Resources:
  vmt://lexicons          the word lists the analyser uses
  vmt://emotions/{label}  the words that signal one emotion
  vmt://providers         registered providers and whether they have a key

Examples:
  vmt mcp serve
  vmt mcp serve --port 8080
  vmt mcp serve --host 0.0.0.0 --port 8080`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "serve over HTTP on this port (0 = stdio)")
	mcpServeCmd.Flags().StringVar(&mcpHost, "host", "localhost", "interface to bind with --port")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	addr, err := listenAddr(mcpHost, mcpPort)
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Analysis: analysisService,
		Media:    mediaService,
	}, mcp.WithVersion(buildVersion()))
	if err != nil {
		return err
	}

	if addr == "" {
		return server.Run(commandContext(cmd))
	}
	cmd.PrintErrf("MCP server listening on http://%s\n", addr)
	return server.RunHTTP(commandContext(cmd), addr)
}

// listenAddr returns the HTTP address for port, or "" for stdio.
func listenAddr(host string, port int) (string, error) {
	switch {
	case port == 0:
		return "", nil
	case port < 0 || port > 65535:
		return "", fmt.Errorf("invalid port %d", port)
	}
	return net.JoinHostPort(host, strconv.Itoa(port)), nil
}
