package mcpserver

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/helmcode/reqcheck/pkg/model"
)

const (
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

func formatArg() mcp.ToolOption {
	return mcp.WithString("format",
		mcp.Description("Response format: markdown (default) or json"),
		mcp.DefaultString(formatMarkdown),
		mcp.Enum(formatMarkdown, formatJSON),
	)
}

// boolArg extracts a boolean argument from a tool request.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

// jsonResult renders v as indented JSON text.
func jsonResult(v interface{}) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

func writeResult(sb *strings.Builder, r *model.AnalysisResult) {
	sb.WriteString(fmt.Sprintf("**Readiness**: %.1f / 100 (%s)\n", r.ReadinessScore, r.ReadinessLevel))
	sb.WriteString(fmt.Sprintf("- Ambiguity score: %.1f\n", r.AmbiguityScore))
	sb.WriteString(fmt.Sprintf("- Assumption score: %.1f\n", r.AssumptionScore))

	if len(r.Issues) > 0 {
		sb.WriteString(fmt.Sprintf("\n### Issues (%d)\n\n", r.TotalIssues))
		for _, issue := range r.Issues {
			sb.WriteString(fmt.Sprintf("- %s\n", issueLine(issue)))
		}
	}
	writeQuestions(sb, r.Suggestions)
}

func writeQuestions(sb *strings.Builder, questions []string) {
	if len(questions) == 0 {
		return
	}
	sb.WriteString("\n### Clarifying questions\n\n")
	for i, q := range questions {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, q))
	}
}

func issueLine(issue model.Issue) string {
	switch v := issue.(type) {
	case *model.AmbiguityIssue:
		return fmt.Sprintf("**%s** `%s`: %s", v.Type, v.MatchedText, v.Message)
	case *model.AssumptionIssue:
		return fmt.Sprintf("**%s** (%s) `%s`: %s", v.Type, v.Category, v.MatchedText, v.AssumptionDescription)
	}
	return issue.Explain()
}
