package main

import (
	"github.com/spf13/cobra"

	"github.com/ericfisherdev/personauth/internal/config"
	"github.com/ericfisherdev/personauth/internal/logging"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Apply all pending schema migrations to the configured SQLite or PostgreSQL store.`,
		RunE:  runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.Store == config.StoreMemory {
		cmd.Println("Memory store has no schema, nothing to migrate")
		return nil
	}

	logger := logging.Setup("personauth", version, cfg.LogFormat, cfg.LogLevel, cmd.ErrOrStderr())

	cmd.Println("Running migrations...")
	_, closeStore, err := openStore(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	closeStore()

	cmd.Println("Migrations completed successfully")
	return nil
}
