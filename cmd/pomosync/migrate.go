package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pomosync/internal/config"
	"pomosync/internal/db"
	"pomosync/migrations"
)

func newMigrateCmd() *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if dbPath != "" {
				cfg.DBPath = dbPath
			}

			database, err := db.OpenSQLite(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer database.Close()

			if err := db.RunMigrations(database, db.MigrationSource(cfg.MigrationsDir, migrations.FS)); err != nil {
				return fmt.Errorf("run migrations: %w", err)
			}

			fmt.Fprintf(os.Stdout, "migrations applied: %s\n", cfg.DBPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (overrides DB_PATH)")
	return cmd
}
