package components

import (
	"log/slog"

	"slot-booker/internal/infra/memstore"
	sqlc "slot-booker/internal/infra/sqlc/generated"
	"slot-booker/internal/infra/uow"
	"slot-booker/internal/pkg/config"
	"slot-booker/internal/pkg/errs"
	"slot-booker/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewSQLQueries,
		NewUnitOfWork,
	),
)

func NewSQLQueries() *sqlc.Queries {
	return sqlc.New()
}

type UnitOfWorkParams struct {
	fx.In

	Config  config.Config
	Pool    *pgxpool.Pool
	Queries *sqlc.Queries
	Logger  *slog.Logger
}

// NewUnitOfWork selects the store driver. The memory driver keeps every
// booking in process and loads the catalog from the seed file.
func NewUnitOfWork(p UnitOfWorkParams) (shared.UnitOfWork, error) {
	switch p.Config.Store.Driver {
	case config.StoreDriverMemory:
		store := memstore.New()
		if path := p.Config.Store.SeedFile; path != "" {
			seed, err := memstore.LoadSeedFile(path)
			if err != nil {
				return nil, err
			}
			if err := store.Apply(seed); err != nil {
				return nil, errs.Wrapf(err, "apply seed file %s", path)
			}
			p.Logger.Info("catalog seeded", "file", path,
				"tenants", len(seed.Tenants), "providers", len(seed.Providers), "services", len(seed.Services))
		} else {
			p.Logger.Warn("memory store has no seed file; every lookup will be not found")
		}
		return memstore.NewUnitOfWork(store), nil
	default:
		if p.Pool == nil {
			return nil, errs.New("postgres store driver requires a database pool")
		}
		return uow.NewPostgresUoW(p.Pool, p.Queries, uow.RetryPolicy{
			Base:       p.Config.Booking.TxRetryBase,
			MaxRetries: p.Config.Booking.TxMaxRetries,
		}), nil
	}
}
