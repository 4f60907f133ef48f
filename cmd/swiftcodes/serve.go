package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/spf13/cobra"

	"github.com/zdziszkee/swift-codes-registry/internal/api/handlers"
	"github.com/zdziszkee/swift-codes-registry/internal/api/router"
	"github.com/zdziszkee/swift-codes-registry/internal/configurations"
	"github.com/zdziszkee/swift-codes-registry/internal/database"
	"github.com/zdziszkee/swift-codes-registry/internal/importer"
	"github.com/zdziszkee/swift-codes-registry/internal/metrics"
	"github.com/zdziszkee/swift-codes-registry/internal/parsers"
	"github.com/zdziszkee/swift-codes-registry/internal/repositories"
	"github.com/zdziszkee/swift-codes-registry/internal/services"
)

const autoLoadTimeout = 5 * time.Minute

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveRun(cmd.Context(), configFromContext(cmd.Context()))
		},
	}
}

func serveRun(ctx context.Context, cfg *configurations.Config) error {
	if cfg == nil {
		return errors.New("no config found in context")
	}

	logger, closer, err := setupLogger(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return err
	}
	defer db.Close()

	repo := repositories.NewSQLSwiftRepository(db, logger)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	if cfg.Data.AutoLoad {
		autoLoad(ctx, cfg, repo, m, logger)
	}

	swiftService := services.NewSwiftService(repo, logger)
	handler := handlers.NewSwiftHandler(swiftService, logger)
	app := router.SetupRoutes(handler, router.Options{
		AppName:      cfg.AppName,
		BodyLimit:    cfg.Server.BodyLimit,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Logger:       logger,
		Metrics:      m,
		MetricsPath:  cfg.Metrics.Path,
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", cfg.Server.Address)
		serverErr <- app.Listen(cfg.Server.Address, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("Server error", "error", err)
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		return err
	}

	logger.Info("Server exiting")
	return nil
}

// autoLoad seeds an empty store from the configured file. Failures are
// logged and the server starts anyway.
func autoLoad(ctx context.Context, cfg *configurations.Config, repo repositories.SwiftRepository, m *metrics.Metrics, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(ctx, autoLoadTimeout)
	defer cancel()

	logger.Info("Loading SWIFT codes", "file", cfg.Data.SwiftCodesFile)
	imp := importer.New(repo, parsers.NewSwiftCodesParser(logger), m, logger)
	result, ran, err := imp.AutoLoad(ctx, cfg.Data.SwiftCodesFile)
	if err != nil {
		logger.Warn("Failed to load SWIFT codes", "file", cfg.Data.SwiftCodesFile, "error", err)
		return
	}
	if ran {
		logger.Info("Successfully loaded SWIFT codes", "inserted", result.Inserted)
	}
}
