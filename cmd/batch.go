package cmd

import (
	"fmt"
	"os"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/helmcode/reqcheck/pkg/config"
	"github.com/helmcode/reqcheck/pkg/formatter"
	"github.com/helmcode/reqcheck/pkg/metrics"
	"github.com/helmcode/reqcheck/pkg/parser"
)

var (
	batchFormat      string
	batchOutput      string
	batchConcurrency int
)

func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Analyze many requirements at once",
		Long: `Analyze every requirement in FILE and summarize their readiness. FILE may be
a JSON or YAML list, an object with a "texts" list, or plain text with one
requirement per line. Use - to read from stdin.

Examples:
  # Analyze a backlog export
  reqcheck batch stories.json

  # One requirement per line, summarized as YAML
  reqcheck batch requirements.txt --format lines -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: runBatch,
	}

	cmd.Flags().StringVar(&batchFormat, "format", parser.FormatAuto, "Input format (auto, json, yaml, lines)")
	cmd.Flags().StringVarP(&batchOutput, "output", "o", formatter.FormatHuman, "Output format (human, json, yaml)")
	cmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "Requirements analyzed in parallel (0 = one per CPU)")

	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	data, err := readFile(args[0])
	if err != nil {
		return err
	}
	texts, err := parser.ParseBatch(data, batchFormat)
	if err != nil {
		return err
	}

	flags := config.Flags{Output: outputFlag(cmd, &batchOutput)}
	if cmd.Flags().Changed("concurrency") {
		flags.Concurrency = &batchConcurrency
	}
	cfg, logger, a, err := setup(cmd, flags, llmNone)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if len(texts) > a.MaxBatch() {
		return fmt.Errorf("batch size limited to %d texts, got %d", a.MaxBatch(), len(texts))
	}

	var s *spinner.Spinner
	if cfg.Output == formatter.FormatHuman {
		s = startSpinner(fmt.Sprintf("Analyzing %d requirements...", len(texts)))
	}
	items, err := a.AnalyzeBatch(cmd.Context(), texts)
	if s != nil {
		s.Stop()
	}
	if err != nil {
		return fmt.Errorf("batch analysis failed: %w", err)
	}

	return formatter.DisplayBatch(os.Stdout, formatter.BatchReport{
		Results: items,
		Total:   len(items),
		Summary: metrics.Summarize(items),
	}, cfg.Output)
}
