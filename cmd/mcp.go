package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/helmcode/reqcheck/pkg/config"
	"github.com/helmcode/reqcheck/pkg/mcpserver"
)

func NewMCPCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve analysis tools over the Model Context Protocol (stdio)",
		Long: `Run an MCP server on stdin/stdout so AI assistants can score requirements
before generating tests from them.

Example client configuration:
  {"mcpServers": {"reqcheck": {"command": "reqcheck", "args": ["mcp"]}}}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, a, err := setup(cmd, config.Flags{}, llmOptional)
			if err != nil {
				return err
			}
			defer logger.Sync()

			logger.Info("mcp server starting",
				zap.String("annotator", a.Annotator().Name()),
				zap.Bool("llm", a.HasLLM()),
			)
			return mcpserver.ServeStdio(mcpserver.New(a, version))
		},
	}
}
