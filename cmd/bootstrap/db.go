package bootstrap

import (
	"context"
	"log/slog"

	"garden-stock-api/internal/infra/db"
	"garden-stock-api/internal/infra/repository"
	"garden-stock-api/internal/pkg/config"
	"garden-stock-api/internal/usecase/shared"

	"go.uber.org/fx"
)

var StoreModule = fx.Module("store",
	fx.Provide(
		NewSnapshotStore,
	),
)

type schemaStore interface {
	shared.SnapshotStore
	EnsureSchema(ctx context.Context) error
}

// NewSnapshotStore opens the backend selected by STORE_DRIVER and makes sure
// its table exists.
func NewSnapshotStore(lc fx.Lifecycle, cfg config.Config) (shared.SnapshotStore, error) {
	var (
		store   schemaStore
		cleanup func()
	)

	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pool, closePool, err := db.Connect(cfg.DB)
		if err != nil {
			return nil, err
		}
		store, cleanup = repository.NewPostgresSnapshotStore(pool), closePool
	default:
		database, closeDB, err := db.OpenSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		store, cleanup = repository.NewSQLiteSnapshotStore(database), closeDB
	}

	if err := store.EnsureSchema(context.Background()); err != nil {
		cleanup()
		return nil, err
	}
	slog.Info("Snapshot store ready", "driver", cfg.Store.Driver)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return store, nil
}
