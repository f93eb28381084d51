package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-FieldScheduler/internal/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply PostgreSQL migrations of the snapshot store",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

// runMigrate применяет миграции; newRuntime делает это при открытии postgres хранилища
func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Storage.Backend != config.StoragePostgres {
		return fmt.Errorf("migrate requires storage.backend = %q, got %q", config.StoragePostgres, cfg.Storage.Backend)
	}

	rt, err := newRuntime(context.Background(), false)
	if err != nil {
		return err
	}
	defer rt.Close()

	fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
	return nil
}
