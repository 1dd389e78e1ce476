package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/helmcode/reqcheck/pkg/analyzer"
	"github.com/helmcode/reqcheck/pkg/metrics"
	"github.com/helmcode/reqcheck/pkg/model"
	"github.com/helmcode/reqcheck/pkg/parser"
)

// AnalyzeTool handles the analyze_requirement MCP tool.
type AnalyzeTool struct {
	analyzer *analyzer.Analyzer
}

func NewAnalyzeTool(a *analyzer.Analyzer) *AnalyzeTool {
	return &AnalyzeTool{analyzer: a}
}

// Definition returns the MCP tool definition for analyze_requirement.
func (t *AnalyzeTool) Definition() mcp.Tool {
	return mcp.NewTool("analyze_requirement",
		mcp.WithDescription(
			"Score a requirement or test case for ambiguity and hidden assumptions. "+
				"Returns ambiguity, assumption and readiness scores, the issues found, and clarifying questions.",
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Requirement or test case text"),
		),
		mcp.WithBoolean("detailed",
			mcp.Description("Include preprocessing details and a score breakdown (JSON format only)"),
		),
		formatArg(),
	)
}

// Handle processes the analyze_requirement tool call.
func (t *AnalyzeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("text", "")
	if strings.TrimSpace(text) == "" {
		return mcp.NewToolResultError("'text' is required"), nil
	}
	format := req.GetString("format", formatMarkdown)

	if boolArg(req, "detailed", false) && format == formatJSON {
		res, err := t.analyzer.AnalyzeDetailed(ctx, text)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
		}
		return jsonResult(res), nil
	}

	res, err := t.analyzer.AnalyzeText(ctx, text)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	if format == formatJSON {
		return jsonResult(res), nil
	}

	var sb strings.Builder
	sb.WriteString("## Requirement Analysis\n\n")
	writeResult(&sb, res)
	return mcp.NewToolResultText(sb.String()), nil
}

// BatchTool handles the analyze_batch MCP tool.
type BatchTool struct {
	analyzer *analyzer.Analyzer
}

func NewBatchTool(a *analyzer.Analyzer) *BatchTool {
	return &BatchTool{analyzer: a}
}

// Definition returns the MCP tool definition for analyze_batch.
func (t *BatchTool) Definition() mcp.Tool {
	return mcp.NewTool("analyze_batch",
		mcp.WithDescription(fmt.Sprintf(
			"Analyze up to %d requirements at once and summarize their readiness.", t.analyzer.MaxBatch()),
		),
		mcp.WithString("texts",
			mcp.Required(),
			mcp.Description("Requirements as a JSON array of strings, a YAML list, or one requirement per line"),
		),
		formatArg(),
	)
}

// Handle processes the analyze_batch tool call.
func (t *BatchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := req.GetString("texts", "")
	if strings.TrimSpace(raw) == "" {
		return mcp.NewToolResultError("'texts' is required"), nil
	}

	texts, err := parser.ParseBatch([]byte(raw), parser.FormatAuto)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid texts: %v", err)), nil
	}

	items, err := t.analyzer.AnalyzeBatch(ctx, texts)
	if err != nil {
		if errors.Is(err, analyzer.ErrBatchTooLarge) {
			return mcp.NewToolResultError(fmt.Sprintf("batch size limited to %d texts", t.analyzer.MaxBatch())), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("batch analysis failed: %v", err)), nil
	}
	summary := metrics.Summarize(items)

	if req.GetString("format", formatMarkdown) == formatJSON {
		return jsonResult(map[string]interface{}{
			"results": items,
			"total":   len(items),
			"summary": summary,
		}), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Batch Analysis (%d requirements)\n\n", len(items)))
	sb.WriteString(fmt.Sprintf("- **Analyzed**: %d\n", summary.Analyzed))
	sb.WriteString(fmt.Sprintf("- **Failed**: %d\n", summary.Failed))
	sb.WriteString(fmt.Sprintf("- **Average readiness**: %.1f (min %.1f, max %.1f)\n",
		summary.Readiness.Average, summary.Readiness.Minimum, summary.Readiness.Peak))
	for _, level := range []model.ReadinessLevel{model.Ready, model.NeedsClarification, model.HighRisk} {
		sb.WriteString(fmt.Sprintf("- **%s**: %d\n", level, summary.Levels[level]))
	}

	for _, item := range items {
		sb.WriteString(fmt.Sprintf("\n### #%d: %s\n\n", item.Index+1, excerpt(texts[item.Index])))
		if item.Failed() {
			sb.WriteString(fmt.Sprintf("Error: %s\n", item.Error))
			continue
		}
		writeResult(&sb, item.Result)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// SuggestTool handles the suggest_questions MCP tool.
type SuggestTool struct {
	analyzer *analyzer.Analyzer
}

func NewSuggestTool(a *analyzer.Analyzer) *SuggestTool {
	return &SuggestTool{analyzer: a}
}

// Definition returns the MCP tool definition for suggest_questions.
func (t *SuggestTool) Definition() mcp.Tool {
	return mcp.NewTool("suggest_questions",
		mcp.WithDescription(
			"List the clarifying questions a requirement author should answer, without scores.",
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Requirement or test case text"),
		),
	)
}

// Handle processes the suggest_questions tool call.
func (t *SuggestTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("text", "")
	if strings.TrimSpace(text) == "" {
		return mcp.NewToolResultError("'text' is required"), nil
	}

	res, err := t.analyzer.AnalyzeText(ctx, text)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	if len(res.Suggestions) == 0 {
		return mcp.NewToolResultText("No clarifying questions: the requirement is specific enough."), nil
	}

	var sb strings.Builder
	writeQuestions(&sb, res.Suggestions)
	return mcp.NewToolResultText(strings.TrimSpace(sb.String())), nil
}

// GenerateTool handles a language model tool call.
type GenerateTool struct {
	name        string
	description string
	run         func(context.Context, string) (*model.Generated, error)
}

// NewInterrogateTool creates the interrogate_requirement tool.
func NewInterrogateTool(a *analyzer.Analyzer) *GenerateTool {
	return &GenerateTool{
		name:        "interrogate_requirement",
		description: "Ask a language model for questions exposing edge cases, constraints and failure states the requirement leaves unsaid.",
		run:         a.Interrogate,
	}
}

// NewOptimizeTool creates the optimize_test_case tool.
func NewOptimizeTool(a *analyzer.Analyzer) *GenerateTool {
	return &GenerateTool{
		name:        "optimize_test_case",
		description: "Ask a language model to rewrite a test case into measurable, automation-ready steps.",
		run:         a.Optimize,
	}
}

func (t *GenerateTool) Definition() mcp.Tool {
	return mcp.NewTool(t.name,
		mcp.WithDescription(t.description),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Requirement or test case text"),
		),
	)
}

func (t *GenerateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("text", "")
	if strings.TrimSpace(text) == "" {
		return mcp.NewToolResultError("'text' is required"), nil
	}

	out, err := t.run(ctx, text)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", t.name, err)), nil
	}
	return mcp.NewToolResultText(out.Output), nil
}

func excerpt(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if r := []rune(text); len(r) > 60 {
		return string(r[:57]) + "..."
	}
	if text == "" {
		return "(empty)"
	}
	return text
}
