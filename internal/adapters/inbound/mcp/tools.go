package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/stacklint/stacklint/internal/adapters/outbound/conditions"
	"github.com/stacklint/stacklint/internal/adapters/outbound/config"
	"github.com/stacklint/stacklint/internal/adapters/outbound/gitinfo"
	"github.com/stacklint/stacklint/internal/adapters/outbound/parser"
	"github.com/stacklint/stacklint/internal/application"
)

// registerTools registers all stacklint MCP tools on the given server.
func registerTools(s *server.MCPServer) {
	// 1. stacklint_lint
	s.AddTool(
		mcplib.NewTool("stacklint_lint",
			mcplib.WithDescription("Lint a CloudFormation template against provider resource limits. Returns the lint result as JSON."),
			mcplib.WithString("template",
				mcplib.Required(),
				mcplib.Description("Path to the template file (YAML or JSON)"),
			),
		),
		handleLint(),
	)

	// 2. stacklint_rules
	s.AddTool(
		mcplib.NewTool("stacklint_rules",
			mcplib.WithDescription("Returns the descriptors of all registered lint rules as JSON"),
		),
		handleRules(),
	)
}

// newLintService creates the standard set of outbound adapters and the
// lint service.
func newLintService() *application.LintService {
	return application.NewLintService(
		parser.New(),
		conditions.New(),
		application.DefaultRegistry(),
		config.New(),
		gitinfo.New(),
		nil,
	)
}

func handleLint() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		templatePath, err := request.RequireString("template")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		result, err := newLintService().Lint(templatePath)
		if err != nil {
			return errorResult(fmt.Sprintf("lint failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

func handleRules() server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		return jsonResult(application.DefaultRegistry().Descriptors())
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
