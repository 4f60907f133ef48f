package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zdziszkee/swift-codes-registry/internal/database"
	"github.com/zdziszkee/swift-codes-registry/internal/importer"
	"github.com/zdziszkee/swift-codes-registry/internal/parsers"
	"github.com/zdziszkee/swift-codes-registry/internal/repositories"
)

func importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Import SWIFT codes from a .csv or .xlsx export (path via arg or data.swift_codes_file config)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)
			if cfg == nil {
				return errors.New("no config found in context")
			}

			// CLI argument takes priority over config
			path := cfg.Data.SwiftCodesFile
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return errors.New("path to SWIFT codes file required (via argument or data.swift_codes_file config)")
			}

			logger, closer, err := setupLogger(cfg)
			if err != nil {
				return err
			}
			defer closer.Close()

			db, err := database.New(ctx, cfg.Database, logger)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer db.Close()

			repo := repositories.NewSQLSwiftRepository(db, logger)
			imp := importer.New(repo, parsers.NewSwiftCodesParser(logger), nil, logger)
			result, err := imp.ImportFile(ctx, path)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Read %d rows, imported %d SWIFT codes (%d branches linked)\n",
				result.Read, result.Inserted, result.Linked)
			return nil
		},
	}
}
