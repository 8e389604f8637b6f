package cli

import (
	mcpadapter "github.com/stacklint/stacklint/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the stacklint MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start stacklint MCP server (stdio)",
		Long:  "Start the stacklint MCP server using stdio transport. This allows AI coding assistants to lint templates and query registered rules.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := mcpadapter.NewStacklintMCPServer()
			return server.ServeStdio(s)
		},
	}
}
