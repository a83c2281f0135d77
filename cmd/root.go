package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SeanMWG/inventory-app/internal/database"
	"github.com/SeanMWG/inventory-app/internal/database/migration"
	"github.com/SeanMWG/inventory-app/internal/locations"
	"github.com/SeanMWG/inventory-app/internal/logger"
	"github.com/SeanMWG/inventory-app/internal/repository"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		dbURL := os.Getenv("DATABASE_URL")
		migrationDir, _ := cmd.Flags().GetString("dir")

		err := migration.Migrate(
			dbURL,
			fmt.Sprintf("file://%s", migrationDir),
			logger.NewLogger(),
		)
		if err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}

		return nil
	},
}

var backfillCmd = &cobra.Command{
	Use:   "backfill-locations",
	Short: "Create location rows from denormalized inventory data and link the items.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := logger.NewLogger()

		db, err := database.NewPostgresConnection(os.Getenv("DATABASE_URL"))
		if err != nil {
			return err
		}
		defer db.Close()

		repo := repository.NewRepository(db)
		created, linked, err := locations.BackfillLocations(cmd.Context(), repo, log)
		if err != nil {
			return fmt.Errorf("backfill locations: %w", err)
		}

		log.Info("backfill complete", zap.Int("created", created), zap.Int("linked", linked))
		return nil
	},
}

// Execute runs a maintenance subcommand when one is given; a bare
// invocation falls through to the HTTP server in main.
func Execute() {
	rootCmd := &cobra.Command{
		Use:   "inventory-app",
		Short: "Hardware inventory tracking service",
	}
	migrateCmd.Flags().String("dir", "migrations", "Directory containing the migration files")
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(backfillCmd)

	if len(os.Args) > 1 {
		if err := rootCmd.Execute(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Exit(0)
	}
}
