package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/helmcode/reqcheck/pkg/config"
	"github.com/helmcode/reqcheck/pkg/server"
)

var serveAddr string

func NewServeCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis HTTP API",
		Long: `Start a JSON HTTP API exposing analysis, batch analysis, suggestions and,
when an API key is configured, interrogation and optimization.

Examples:
  reqcheck serve
  reqcheck serve --addr 127.0.0.1:9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, version)
		},
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default :8000)")

	return cmd
}

func runServe(cmd *cobra.Command, version string) error {
	var flags config.Flags
	if cmd.Flags().Changed("addr") {
		flags.Addr = &serveAddr
	}
	cfg, logger, a, err := setup(cmd, flags, llmOptional)
	if err != nil {
		return err
	}
	defer logger.Sync()

	srv := server.NewServer(cfg.Server, a, logger, version)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-cmd.Context().Done():
	}

	logger.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return <-errCh
}
