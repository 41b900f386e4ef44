package components

import (
	"context"
	"log/slog"

	"previsit-intake/internal/infra/db"
	"previsit-intake/internal/infra/memstore"
	"previsit-intake/internal/infra/uow"
	"previsit-intake/internal/pkg/config"
	"previsit-intake/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewUnitOfWork,
	),
)

// NewUnitOfWork selects the store by STORE_DRIVER. Only the postgres driver
// opens a pool.
func NewUnitOfWork(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.UnitOfWork, error) {
	if cfg.Store.Driver != config.StoreDriverPostgres {
		logger.Info("using in-memory store")
		return memstore.NewUnitOfWork(memstore.NewStore()), nil
	}

	pool, err := NewPool(lc, cfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("using postgres store", "host", cfg.DB.Host, "database", cfg.DB.DBName)
	return uow.NewPostgresUoW(pool, logger), nil
}

// NewPool applies pending migrations when enabled, then connects.
func NewPool(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	if cfg.DB.AutoMigrate {
		if err := db.Migrate(cfg.DB.BuildDSN()); err != nil {
			return nil, err
		}
		logger.Info("database migrations applied")
	}

	pool, cleanup, err := db.Connect(context.Background(), cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}
