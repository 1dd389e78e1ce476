package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/helmcode/reqcheck/pkg/catalog"
	"github.com/helmcode/reqcheck/pkg/config"
	"github.com/helmcode/reqcheck/pkg/formatter"
)

var (
	patternsValidate bool
	patternsOutput   string
)

func NewPatternsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Show the pattern catalog",
		Long: `Print how many terms, patterns and actions the detectors use. With
--validate, exit non-zero when an action implies an undefined assumption
or a pattern fails to compile.`,
		Args: cobra.NoArgs,
		RunE: runPatterns,
	}

	cmd.Flags().BoolVar(&patternsValidate, "validate", false, "Check the catalog for consistency")
	cmd.Flags().StringVarP(&patternsOutput, "output", "o", formatter.FormatHuman, "Output format (human, json, yaml)")

	return cmd
}

func runPatterns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, config.Flags{Output: outputFlag(cmd, &patternsOutput)})
	if err != nil {
		return err
	}

	var validationErr error
	if patternsValidate {
		validationErr = catalog.Validate()
	}
	if err := formatter.DisplayCatalog(cmd.OutOrStdout(), catalog.Summary(), validationErr, cfg.Output); err != nil {
		return err
	}
	if validationErr != nil {
		return errors.New("pattern catalog is inconsistent")
	}
	if patternsValidate && cfg.Output == formatter.FormatHuman {
		printSuccess("Catalog is consistent")
	}
	return nil
}
