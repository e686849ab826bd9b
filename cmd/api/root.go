package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"resume-analyzer/internal/shared/config"
	"resume-analyzer/internal/shared/telemetry"
)

const app = "resume-analyzer"

var rootCmd = &cobra.Command{
	Use:           app,
	Short:         "Resume analyzer API: ATS keyword analysis and a grounded chatbot",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

// Execute executes the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		telemetry.Error("command failed", map[string]any{"error": err})
		fmt.Fprintln(rootCmd.ErrOrStderr(), "error:", err)
	}
	telemetry.Sync()
	return err
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolP("debug", "d", false, "verbose/debug output")
	pf.BoolP("json", "j", true, "json format for logging")
	pf.String("port", "", "listen port (overrides PORT)")
}

// setup loads configuration and installs the process logger.
func setup(cmd *cobra.Command) (config.Config, *zap.Logger, error) {
	cfg := config.Load(cmd.Flags())
	logger, err := telemetry.New(cfg.LogJSON, cfg.LogDebug)
	if err != nil {
		return cfg, nil, fmt.Errorf("creating a logger: %w", err)
	}
	telemetry.SetLogger(logger)
	return cfg, logger, nil
}
