// Package mcpserver exposes requirement analysis as MCP tools over stdio.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/helmcode/reqcheck/pkg/analyzer"
)

const instructions = `reqcheck scores requirements and test cases for ambiguity and hidden assumptions.
Call analyze_requirement before handing a requirement to test generation; a readiness
below 70 means the author should answer the returned clarifying questions first.`

// New creates the MCP server with every tool registered. The language model
// tools are only registered when a has a model configured.
func New(a *analyzer.Analyzer, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"reqcheck",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	analyzeTool := NewAnalyzeTool(a)
	s.AddTool(analyzeTool.Definition(), analyzeTool.Handle)

	batchTool := NewBatchTool(a)
	s.AddTool(batchTool.Definition(), batchTool.Handle)

	suggestTool := NewSuggestTool(a)
	s.AddTool(suggestTool.Definition(), suggestTool.Handle)

	if a.HasLLM() {
		interrogateTool := NewInterrogateTool(a)
		s.AddTool(interrogateTool.Definition(), interrogateTool.Handle)

		optimizeTool := NewOptimizeTool(a)
		s.AddTool(optimizeTool.Definition(), optimizeTool.Handle)
	}
	return s
}

// ServeStdio serves s over standard input and output until EOF.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
