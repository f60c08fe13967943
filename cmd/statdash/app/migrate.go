package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ougirez/statdash/database"
	"github.com/ougirez/statdash/internal/config"
	"github.com/ougirez/statdash/internal/pkg/constants"
	"github.com/ougirez/statdash/internal/pkg/logger"
	"github.com/ougirez/statdash/internal/pkg/store/xpgx"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create (or with --down drop) the tables of the postgres backend",
		RunE:  runMigrate,
	}
	cmd.Flags().Bool("down", false, "Drop the tables instead")
	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Store.Backend != config.StoreBackendPostgres || cfg.Store.DSN == "" {
		return fmt.Errorf("migrate needs store.backend=postgres and store.dsn: %w", constants.ErrConfigurationMissing)
	}

	ctx := cmd.Context()
	pool, err := xpgx.NewPool(ctx, cfg.Store.DSN)
	if err != nil {
		return fmt.Errorf("xpgx.NewPool: %w", err)
	}
	defer pool.Close()

	down, _ := cmd.Flags().GetBool("down")
	if down {
		if err := database.MigrateDown(ctx, pool); err != nil {
			return fmt.Errorf("MigrateDown: %w", err)
		}
		logger.Infof(ctx, "tables dropped")
		return nil
	}

	if err := database.MigrateUp(ctx, pool); err != nil {
		return fmt.Errorf("MigrateUp: %w", err)
	}
	logger.Infof(ctx, "tables are up to date")
	return nil
}
