package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zdziszkee/swift-codes-registry/internal/configurations"
	"github.com/zdziszkee/swift-codes-registry/internal/logger"
)

const programName = "swiftcodes"

type configKey struct{}

var configFile string

func configFromContext(ctx context.Context) *configurations.Config {
	cfg, _ := ctx.Value(configKey{}).(*configurations.Config)
	return cfg
}

// setupLogger builds the configured logger and installs it as the slog
// default.
func setupLogger(cfg *configurations.Config) (*slog.Logger, io.Closer, error) {
	log, closer, err := logger.New(cfg.Log, os.Stdout)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	log = log.With("app", cfg.AppName)
	slog.SetDefault(log)
	return log, closer, nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:          programName,
		Short:        "SWIFT code registry",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveRun(cmd.Context(), configFromContext(cmd.Context()))
		},
	}

	rootCmd.PersistentFlags().
		StringVar(&configFile, "config", "", "path to config file")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := configurations.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
		return nil
	}

	rootCmd.AddCommand(serveCommand())
	rootCmd.AddCommand(importCommand())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
