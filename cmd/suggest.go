package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/helmcode/reqcheck/pkg/config"
	"github.com/helmcode/reqcheck/pkg/formatter"
)

var (
	suggestFile   string
	suggestOutput string
)

func NewSuggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest [TEXT]",
		Short: "List clarifying questions for a requirement",
		Long: `Print only the clarifying questions an author should answer before the
requirement is handed to testing.

Examples:
  reqcheck suggest "Upload a large file"
  reqcheck suggest -f story.txt -o json`,
		RunE: runSuggest,
	}

	cmd.Flags().StringVarP(&suggestFile, "file", "f", "", "Read the requirement from a file (- for stdin)")
	cmd.Flags().StringVarP(&suggestOutput, "output", "o", formatter.FormatHuman, "Output format (human, json, yaml)")

	return cmd
}

func runSuggest(cmd *cobra.Command, args []string) error {
	text, err := readText(args, suggestFile)
	if err != nil {
		return err
	}

	cfg, logger, a, err := setup(cmd, config.Flags{Output: outputFlag(cmd, &suggestOutput)}, llmNone)
	if err != nil {
		return err
	}
	defer logger.Sync()

	result, err := a.AnalyzeText(cmd.Context(), text)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	if len(result.Suggestions) == 0 && cfg.Output == formatter.FormatHuman {
		printSuccess("No clarifying questions: the requirement is specific enough")
		return nil
	}
	return formatter.DisplaySuggestions(os.Stdout, result.Suggestions, cfg.Output)
}
