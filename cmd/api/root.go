package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	mgo "tour-planning-assistant/internal/adapters/storage/mongodb"
	pg "tour-planning-assistant/internal/adapters/storage/postgres"
	"tour-planning-assistant/internal/config"
	"tour-planning-assistant/internal/platform/logger"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
)

type rootFlags struct {
	configFile string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "tourplanner",
		Short:         "Tour planning API: tours, events, venues and schedule checks",
		SilenceUsage:  true,
		SilenceErrors: false,
		// Sin subcomando => serve.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags)
		},
	}
	root.PersistentFlags().StringVar(&flags.configFile, "config", "", "optional config file (yaml, json or toml)")

	root.AddCommand(newServeCmd(flags))
	root.AddCommand(newMigrateCmd(flags))
	root.AddCommand(newCheckCmd())
	return root
}

func loadConfig(flags *rootFlags) (config.Config, logger.Logger, error) {
	cfg, err := config.Load(flags.configFile)
	if err != nil {
		return config.Config{}, nil, err
	}
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
		Output: os.Stdout,
	})
	return cfg, log, nil
}

// stores son las conexiones abiertas según config; a lo sumo una está seteada.
type stores struct {
	db    *sql.DB
	mongo *mongo.Database

	closeFn func(ctx context.Context) error
}

func (s stores) Close(ctx context.Context) error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn(ctx)
}

func openStores(ctx context.Context, cfg config.Config, log logger.Logger) (stores, error) {
	switch cfg.Storage() {
	case config.StoragePostgres:
		db, err := pg.Open(ctx, cfg.DBDSN)
		if err != nil {
			return stores{}, fmt.Errorf("open postgres: %w", err)
		}
		log.Info("storage ready", logger.Fields{"storage": config.StoragePostgres})
		return stores{db: db, closeFn: func(context.Context) error { return db.Close() }}, nil

	case config.StorageMongo:
		client, db, err := mgo.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return stores{}, fmt.Errorf("open mongodb: %w", err)
		}
		log.Info("storage ready", logger.Fields{"storage": config.StorageMongo, "database": cfg.MongoDatabase})
		return stores{mongo: db, closeFn: client.Disconnect}, nil

	default:
		log.Warn("no DB_DSN or MONGODB_URI; using in-memory storage", logger.Fields{"storage": config.StorageMemory})
		return stores{}, nil
	}
}

func closeStores(s stores, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Close(ctx); err != nil {
		log.Error("storage close failed", logger.Fields{"err": err})
	}
}
