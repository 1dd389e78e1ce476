// Package cmd implements the reqcheck subcommands.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/helmcode/reqcheck/pkg/analyzer"
	"github.com/helmcode/reqcheck/pkg/config"
	"github.com/helmcode/reqcheck/pkg/llm"
	"github.com/helmcode/reqcheck/pkg/nlp"
)

var (
	configPath    string
	verbose       bool
	annotatorKind string
	llmProvider   string
	llmModel      string
)

// AddGlobalFlags registers the flags shared by every subcommand.
func AddGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ./"+config.DefaultFileName+")")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	root.PersistentFlags().StringVar(&annotatorKind, "annotator", "", "Text annotator (auto, prose, basic)")
	root.PersistentFlags().StringVar(&llmProvider, "provider", "", "LLM provider ("+llm.ProviderList()+"). Defaults to auto-detect from env")
	root.PersistentFlags().StringVar(&llmModel, "model", "", "LLM model to use (overrides default)")
}

// loadConfig reads the config file and applies the flags the user set.
func loadConfig(cmd *cobra.Command, extra config.Flags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
	} else {
		cfg, err = config.LoadConfigFromDir(".")
	}
	if err != nil {
		return nil, err
	}

	flags := extra
	if cmd.Flags().Changed("annotator") {
		flags.Annotator = &annotatorKind
	}
	if cmd.Flags().Changed("provider") {
		flags.Provider = &llmProvider
	}
	if cmd.Flags().Changed("model") {
		flags.Model = &llmModel
	}
	if verbose {
		level := "debug"
		flags.LogLevel = &level
	}
	cfg.MergeWithFlags(flags)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// outputFlag returns a pointer to value when the -o flag was set.
func outputFlag(cmd *cobra.Command, value *string) *string {
	if cmd.Flags().Changed("output") {
		return value
	}
	return nil
}

// newLogger builds a production logger writing to stderr at level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = lvl
	return zcfg.Build()
}

type llmMode int

const (
	llmNone llmMode = iota
	llmOptional
	llmRequired
)

// newAnalyzer builds the analyzer described by cfg. With llmOptional a
// missing API key only disables the language model features.
func newAnalyzer(cfg *config.Config, logger *zap.Logger, mode llmMode) (*analyzer.Analyzer, error) {
	annotator, err := nlp.New(cfg.Annotator, logger)
	if err != nil {
		return nil, err
	}

	opts := []analyzer.Option{
		analyzer.WithLogger(logger),
		analyzer.WithAnnotator(annotator),
		analyzer.WithMaxBatch(cfg.Batch.MaxSize),
		analyzer.WithConcurrency(cfg.Batch.Concurrency),
	}

	if mode != llmNone {
		client, err := newLLM(cfg.LLM)
		switch {
		case err == nil:
			opts = append(opts, analyzer.WithLLM(client))
		case mode == llmRequired:
			return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
		default:
			logger.Warn("language model features disabled", zap.Error(err))
		}
	}
	return analyzer.New(opts...), nil
}

func newLLM(cfg config.LLMConfig) (llm.LLM, error) {
	client, err := llm.NewFactory().CreateLLM(llm.Config{
		Provider: llm.Provider(cfg.Provider),
		Model:    cfg.Model,
		BaseURL:  cfg.BaseURL,
	})
	if err != nil {
		return nil, err
	}
	return llm.NewResilient(client, llm.ResilienceConfig{
		MaxAttempts:  cfg.MaxAttempts,
		InitialDelay: cfg.InitialDelay,
		Timeout:      cfg.Timeout,
	}), nil
}

// setup loads the configuration and builds the logger and analyzer.
func setup(cmd *cobra.Command, extra config.Flags, mode llmMode) (*config.Config, *zap.Logger, *analyzer.Analyzer, error) {
	cfg, err := loadConfig(cmd, extra)
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, err
	}
	a, err := newAnalyzer(cfg, logger, mode)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, a, nil
}

// readText returns the requirement from --file, the arguments, or piped stdin.
func readText(args []string, file string) (string, error) {
	if file != "" {
		data, err := readFile(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return "", errors.New("provide the requirement as an argument, with --file, or on stdin")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// readFile reads path, or stdin when path is "-".
func readFile(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func startSpinner(suffix string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + suffix
	s.Start()
	return s
}

func printSuccess(msg string) {
	green := color.New(color.FgGreen)
	green.Fprintf(os.Stderr, "✓ %s\n", msg)
}
