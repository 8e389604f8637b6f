package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewStacklintMCPServer creates a new MCP server with all stacklint
// tools registered.
func NewStacklintMCPServer() *server.MCPServer {
	s := server.NewMCPServer(
		"stacklint",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	registerTools(s)

	return s
}
