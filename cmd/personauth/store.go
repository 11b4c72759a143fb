package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ericfisherdev/personauth/internal/adapter/driven/memory"
	"github.com/ericfisherdev/personauth/internal/adapter/driven/postgres"
	sqliteadapter "github.com/ericfisherdev/personauth/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/personauth/internal/config"
	"github.com/ericfisherdev/personauth/internal/domain/port/driven"
)

// openStore opens the configured backend, applies pending migrations and
// returns the store with a function that releases its connections.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (driven.PersonStore, func(), error) {
	switch cfg.Store {
	case config.StoreSQLite:
		db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("database opened", "store", cfg.Store, "path", cfg.DBPath)

		if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logger.Info("migrations complete")

		closeDB := func() {
			if err := db.Close(); err != nil {
				logger.Error("error closing database", "error", err)
			}
		}
		return sqliteadapter.NewPersonRepo(db), closeDB, nil

	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("database opened", "store", cfg.Store)

		if err := postgres.RunMigrations(pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info("migrations complete")

		return postgres.NewPersonRepo(pool), pool.Close, nil

	case config.StoreMemory:
		logger.Warn("using in-memory store, data is lost on exit")
		return memory.NewPersonRepo(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
