package main

import (
	"fmt"

	mgo "tour-planning-assistant/internal/adapters/storage/mongodb"
	pg "tour-planning-assistant/internal/adapters/storage/postgres"
	"tour-planning-assistant/internal/config"
	"tour-planning-assistant/internal/platform/logger"

	"github.com/spf13/cobra"
)

func newMigrateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply Postgres migrations or create MongoDB indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, log, err := loadConfig(flags)
			if err != nil {
				return err
			}

			st, err := openStores(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer closeStores(st, log)

			switch cfg.Storage() {
			case config.StoragePostgres:
				applied, err := pg.Migrate(ctx, st.db)
				if err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
				log.Info("migrations applied", logger.Fields{"applied": len(applied), "names": applied})
			case config.StorageMongo:
				names, err := mgo.EnsureIndexes(ctx, st.mongo)
				if err != nil {
					return fmt.Errorf("ensure indexes: %w", err)
				}
				log.Info("indexes ready", logger.Fields{"indexes": names})
			default:
				log.Info("in-memory storage: nothing to migrate", nil)
			}
			return nil
		},
	}
}
