package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/helmcode/reqcheck/pkg/config"
	"github.com/helmcode/reqcheck/pkg/formatter"
)

var (
	analyzeFile     string
	analyzeDetailed bool
	analyzeOutput   string
)

func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [TEXT]",
		Short: "Score a requirement for ambiguity and hidden assumptions",
		Long: `Analyze a requirement or test case and report its ambiguity, assumption
and readiness scores, the issues found, and clarifying questions.

Examples:
  # Analyze a requirement given on the command line
  reqcheck analyze "The system should load fast and handle errors properly"

  # Analyze a file and include preprocessing and score details
  reqcheck analyze -f story.txt --detailed

  # Pipe a requirement in and get JSON
  echo "User logs in and accesses dashboard" | reqcheck analyze -o json`,
		RunE: runAnalyze,
	}

	cmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Read the requirement from a file (- for stdin)")
	cmd.Flags().BoolVar(&analyzeDetailed, "detailed", false, "Include preprocessing details and a score breakdown")
	cmd.Flags().StringVarP(&analyzeOutput, "output", "o", formatter.FormatHuman, "Output format (human, json, yaml)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text, err := readText(args, analyzeFile)
	if err != nil {
		return err
	}

	cfg, logger, a, err := setup(cmd, config.Flags{Output: outputFlag(cmd, &analyzeOutput)}, llmNone)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if analyzeDetailed {
		result, err := a.AnalyzeDetailed(cmd.Context(), text)
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}
		return formatter.DisplayDetailed(os.Stdout, result, cfg.Output)
	}

	result, err := a.AnalyzeText(cmd.Context(), text)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	return formatter.DisplayResult(os.Stdout, result, cfg.Output)
}
