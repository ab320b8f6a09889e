// Package driving declares what the CLI, TUI and MCP server may ask of the
// core: analyse text, search media, manage sessions, load transcripts,
// export selections and edit settings. internal/core/services implements
// every interface here.
package driving
