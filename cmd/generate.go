package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/helmcode/reqcheck/pkg/analyzer"
	"github.com/helmcode/reqcheck/pkg/config"
	"github.com/helmcode/reqcheck/pkg/formatter"
	"github.com/helmcode/reqcheck/pkg/model"
)

var (
	generateFile   string
	generateOutput string
)

func NewInterrogateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interrogate [TEXT]",
		Short: "Ask a language model for the questions a requirement leaves open",
		Long: `Analyze a requirement, then ask a language model for questions about the
edge cases, constraints and failure states it leaves unsaid. Requires
ANTHROPIC_API_KEY or OPENAI_API_KEY.

Examples:
  reqcheck interrogate "Users can upload a profile picture"
  reqcheck interrogate -f story.txt --provider openai`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, "INTERROGATION QUESTIONS", "Interrogating requirement...",
				func(a *analyzer.Analyzer) func(context.Context, string) (*model.Generated, error) {
					return a.Interrogate
				})
		},
	}
	addGenerateFlags(cmd)
	return cmd
}

func NewOptimizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize [TEXT]",
		Short: "Rewrite a test case into measurable, automation-ready steps",
		Long: `Analyze a test case, then ask a language model to rewrite it so that every
issue found is resolved. Requires ANTHROPIC_API_KEY or OPENAI_API_KEY.

Examples:
  reqcheck optimize "Check that login works"
  reqcheck optimize -f testcase.txt -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, "OPTIMIZED TEST CASE", "Optimizing test case...",
				func(a *analyzer.Analyzer) func(context.Context, string) (*model.Generated, error) {
					return a.Optimize
				})
		},
	}
	addGenerateFlags(cmd)
	return cmd
}

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&generateFile, "file", "f", "", "Read the text from a file (- for stdin)")
	cmd.Flags().StringVarP(&generateOutput, "output", "o", formatter.FormatHuman, "Output format (human, json, yaml)")
}

func runGenerate(cmd *cobra.Command, args []string, title, progress string,
	pick func(*analyzer.Analyzer) func(context.Context, string) (*model.Generated, error)) error {
	text, err := readText(args, generateFile)
	if err != nil {
		return err
	}

	cfg, logger, a, err := setup(cmd, config.Flags{Output: outputFlag(cmd, &generateOutput)}, llmRequired)
	if err != nil {
		return err
	}
	defer logger.Sync()

	human := cfg.Output == formatter.FormatHuman
	if human {
		printSuccess("AI client initialized")
	}

	s := startSpinner(progress)
	out, err := pick(a)(cmd.Context(), text)
	s.Stop()
	if err != nil {
		return fmt.Errorf("%s failed: %w", cmd.Name(), err)
	}

	return formatter.DisplayGenerated(os.Stdout, title, out, cfg.Output)
}
