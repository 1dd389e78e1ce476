package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/helmcode/reqcheck/pkg/catalog"
	"github.com/helmcode/reqcheck/pkg/metrics"
	"github.com/helmcode/reqcheck/pkg/model"
)

// Output formats.
const (
	FormatHuman = "human"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// BatchReport is a batch result with its summary.
type BatchReport struct {
	Results []model.BatchItem    `json:"results" yaml:"results"`
	Total   int                  `json:"total" yaml:"total"`
	Summary metrics.BatchSummary `json:"summary" yaml:"summary"`
}

// DisplayResult renders a single analysis.
func DisplayResult(w io.Writer, result *model.AnalysisResult, format string) error {
	if format == FormatHuman || format == "" {
		displayResultHuman(w, result)
		footer(w)
		return nil
	}
	return encode(w, result, format)
}

// DisplayDetailed renders an analysis with preprocessing and breakdown.
func DisplayDetailed(w io.Writer, result *model.DetailedResult, format string) error {
	if format == FormatHuman || format == "" {
		displayResultHuman(w, &result.AnalysisResult)
		displayDetailsHuman(w, result)
		footer(w)
		return nil
	}
	return encode(w, result, format)
}

// DisplayBatch renders batch results followed by their summary.
func DisplayBatch(w io.Writer, report BatchReport, format string) error {
	if format == FormatHuman || format == "" {
		displayBatchHuman(w, report)
		footer(w)
		return nil
	}
	return encode(w, report, format)
}

// DisplayGenerated renders language model output.
func DisplayGenerated(w io.Writer, title string, g *model.Generated, format string) error {
	if format == FormatHuman || format == "" {
		cyan := color.New(color.FgCyan, color.Bold)
		fmt.Fprintln(w)
		cyan.Fprintf(w, "🤖 %s (%s):\n", title, g.Provider)
		fmt.Fprintln(w, wrapText(g.Output, 80, "   "))
		fmt.Fprintln(w)
		if g.Analysis != nil {
			levelColor(g.Analysis.ReadinessLevel).Fprintf(w, "📊 READINESS: %.1f (%s), %d issues detected\n",
				g.Analysis.ReadinessScore, g.Analysis.ReadinessLevel, g.Analysis.TotalIssues)
		}
		footer(w)
		return nil
	}
	return encode(w, g, format)
}

// DisplaySuggestions renders a list of clarifying questions.
func DisplaySuggestions(w io.Writer, questions []string, format string) error {
	if format == FormatHuman || format == "" {
		displaySuggestionsHuman(w, questions)
		return nil
	}
	return encode(w, map[string]interface{}{"suggestions": questions}, format)
}

// DisplayCatalog renders the pattern catalog sizes and its validation error,
// if any.
func DisplayCatalog(w io.Writer, stats catalog.Stats, validationErr error, format string) error {
	if format != FormatHuman && format != "" {
		return encode(w, stats, format)
	}

	white := color.New(color.FgWhite, color.Bold)
	fmt.Fprintln(w)
	white.Fprintln(w, "📚 PATTERN CATALOG:")
	fmt.Fprintf(w, "   %-24s %d\n", "Subjective terms", stats.SubjectiveTerms)
	fmt.Fprintf(w, "   %-24s %d\n", "Weak modality terms", stats.WeakModalityTerms)
	fmt.Fprintf(w, "   %-24s %d\n", "Undefined references", stats.UndefinedReferences)
	fmt.Fprintf(w, "   %-24s %d\n", "Non-testable patterns", stats.NonTestablePatterns)
	fmt.Fprintf(w, "   %-24s %d\n", "Actions", stats.Actions)
	fmt.Fprintf(w, "   %-24s %d\n", "Assumptions", stats.Assumptions)
	fmt.Fprintf(w, "   %-24s %d\n\n", "Environment indicators", stats.EnvironmentTerms)

	if validationErr != nil {
		color.New(color.FgRed).Fprintln(w, "✗ Catalog is inconsistent:")
		for _, line := range strings.Split(validationErr.Error(), "\n") {
			fmt.Fprintf(w, "   %s\n", line)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func encode(w io.Writer, v interface{}, format string) error {
	switch format {
	case FormatJSON:
		output, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(output))
		return err
	case FormatYAML:
		output, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(w, string(output))
		return err
	default:
		return fmt.Errorf("unknown output format %q (supported: human, json, yaml)", format)
	}
}

func displayResultHuman(w io.Writer, r *model.AnalysisResult) {
	yellow := color.New(color.FgYellow, color.Bold)

	fmt.Fprintln(w)
	levelColor(r.ReadinessLevel).Fprintf(w, "📊 READINESS: %.1f / 100 (%s)\n", r.ReadinessScore, r.ReadinessLevel)
	fmt.Fprintf(w, "   Ambiguity:   %s\n", scoreBar(r.AmbiguityScore))
	fmt.Fprintf(w, "   Assumptions: %s\n\n", scoreBar(r.AssumptionScore))

	if len(r.Issues) > 0 {
		yellow.Fprintf(w, "⚠️  ISSUES FOUND (%d):\n", r.TotalIssues)
		for i, issue := range r.Issues {
			fmt.Fprintf(w, "   %d. %s %s\n", i+1, issueIcon(issue), issueTitle(issue))
			fmt.Fprintf(w, "      %s\n", issue.Explain())
			if asm, ok := issue.(*model.AssumptionIssue); ok && asm.AssumptionDescription != "" {
				fmt.Fprintf(w, "      Assumes: %s\n", color.YellowString(asm.AssumptionDescription))
			}
		}
		fmt.Fprintln(w)
	} else {
		color.New(color.FgGreen).Fprintln(w, "✓ No ambiguity or hidden assumptions detected")
		fmt.Fprintln(w)
	}

	displaySuggestionsHuman(w, r.Suggestions)
}

func displaySuggestionsHuman(w io.Writer, questions []string) {
	if len(questions) == 0 {
		return
	}
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintln(w, "💡 CLARIFYING QUESTIONS:")
	for i, q := range questions {
		fmt.Fprintf(w, "   %d. %s\n", i+1, q)
	}
	fmt.Fprintln(w)
}

func displayDetailsHuman(w io.Writer, r *model.DetailedResult) {
	white := color.New(color.FgWhite, color.Bold)

	p := r.Preprocessing
	white.Fprintln(w, "📄 PREPROCESSING:")
	fmt.Fprintf(w, "   Annotator: %s\n", p.Annotator)
	fmt.Fprintf(w, "   Tokens: %d, words: %d, unique: %d, sentences: %d\n",
		p.TokenCount, p.WordCount, p.Stats.UniqueWords, len(p.Sentences))
	for _, e := range p.Entities {
		fmt.Fprintf(w, "   Entity: %s (%s)\n", e.Text, e.Label)
	}
	fmt.Fprintln(w)

	b := r.Breakdown
	white.Fprintln(w, "🧮 SCORE BREAKDOWN:")
	fmt.Fprintf(w, "   Ambiguity %.1f from %d issues\n", b.Ambiguity.Score, b.Ambiguity.IssueCount)
	fmt.Fprintf(w, "   Assumptions %.1f from %d issues\n", b.Assumptions.Score, b.Assumptions.IssueCount)
	if len(b.Assumptions.Categories) > 0 {
		cats := make([]string, len(b.Assumptions.Categories))
		for i, c := range b.Assumptions.Categories {
			cats[i] = string(c)
		}
		fmt.Fprintf(w, "   Categories: %s\n", strings.Join(cats, ", "))
	}
	fmt.Fprintf(w, "   Readiness = %s = %.1f\n\n", b.Readiness.Formula, b.Readiness.Score)
}

func displayBatchHuman(w io.Writer, report BatchReport) {
	fmt.Fprintln(w)
	for _, item := range report.Results {
		if item.Failed() {
			color.New(color.FgRed).Fprintf(w, "✗ #%d %s\n", item.Index+1, item.Error)
			continue
		}
		r := item.Result
		levelColor(r.ReadinessLevel).Fprintf(w, "%s #%d readiness %.1f (%s), %d issues\n",
			levelIcon(r.ReadinessLevel), item.Index+1, r.ReadinessScore, r.ReadinessLevel, r.TotalIssues)
	}
	fmt.Fprintln(w)

	s := report.Summary
	white := color.New(color.FgWhite, color.Bold)
	white.Fprintf(w, "📊 SUMMARY: %d analyzed, %d failed\n", s.Analyzed, s.Failed)
	fmt.Fprintf(w, "   %-12s avg %5.1f  peak %5.1f  min %5.1f\n", "Ambiguity", s.Ambiguity.Average, s.Ambiguity.Peak, s.Ambiguity.Minimum)
	fmt.Fprintf(w, "   %-12s avg %5.1f  peak %5.1f  min %5.1f\n", "Assumptions", s.Assumption.Average, s.Assumption.Peak, s.Assumption.Minimum)
	fmt.Fprintf(w, "   %-12s avg %5.1f  peak %5.1f  min %5.1f\n", "Readiness", s.Readiness.Average, s.Readiness.Peak, s.Readiness.Minimum)
	for _, level := range []model.ReadinessLevel{model.Ready, model.NeedsClarification, model.HighRisk} {
		fmt.Fprintf(w, "   %s %s: %d\n", levelIcon(level), level, s.Levels[level])
	}

	if len(s.IssueTypes) > 0 {
		types := make([]string, 0, len(s.IssueTypes))
		for t := range s.IssueTypes {
			types = append(types, t)
		}
		sort.Slice(types, func(i, j int) bool {
			if s.IssueTypes[types[i]] != s.IssueTypes[types[j]] {
				return s.IssueTypes[types[i]] > s.IssueTypes[types[j]]
			}
			return types[i] < types[j]
		})
		fmt.Fprintln(w, "   Most frequent issues:")
		for _, t := range types {
			fmt.Fprintf(w, "     %s: %d\n", t, s.IssueTypes[t])
		}
	}
	fmt.Fprintln(w)
}

func footer(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("─", 80))
	fmt.Fprintf(w, "💡 %s\n", color.HiBlackString("Run with -o json or -o yaml for machine-readable output"))
}

func issueTitle(issue model.Issue) string {
	switch v := issue.(type) {
	case *model.AmbiguityIssue:
		return fmt.Sprintf("%s: %q", v.Type, v.MatchedText)
	case *model.AssumptionIssue:
		return fmt.Sprintf("%s [%s]: %q", v.Type, v.Category, v.MatchedText)
	}
	return issue.Matched()
}

func issueIcon(issue model.Issue) string {
	switch v := issue.(type) {
	case *model.AmbiguityIssue:
		switch v.Type {
		case model.NonTestableStatement:
			return "🔴"
		case model.UndefinedReference:
			return "🟠"
		default:
			return "🟡"
		}
	case *model.AssumptionIssue:
		return "🔹"
	}
	return "•"
}

func levelColor(level model.ReadinessLevel) *color.Color {
	switch level {
	case model.Ready:
		return color.New(color.FgGreen, color.Bold)
	case model.NeedsClarification:
		return color.New(color.FgYellow, color.Bold)
	case model.HighRisk:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgWhite)
	}
}

func levelIcon(level model.ReadinessLevel) string {
	switch level {
	case model.Ready:
		return "🟢"
	case model.NeedsClarification:
		return "🟡"
	case model.HighRisk:
		return "🔴"
	default:
		return "⚪"
	}
}

// scoreBar draws a 20-cell bar for a 0-100 score.
func scoreBar(score float64) string {
	filled := int(score/5 + 0.5)
	filled = max(0, min(20, filled))
	return fmt.Sprintf("%s%s %5.1f", strings.Repeat("█", filled), strings.Repeat("░", 20-filled), score)
}

func wrapText(text string, width int, indent string) string {
	var result strings.Builder
	lines := strings.Split(text, "\n")

	for _, line := range lines {
		words := strings.Fields(line)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}

		currentLine := indent
		for _, word := range words {
			if len(currentLine)+len(word)+1 > width {
				result.WriteString(currentLine + "\n")
				currentLine = indent + word
			} else if currentLine == indent {
				currentLine += word
			} else {
				currentLine += " " + word
			}
		}

		if currentLine != indent {
			result.WriteString(currentLine + "\n")
		}
	}

	return strings.TrimSuffix(result.String(), "\n")
}
