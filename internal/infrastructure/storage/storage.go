// Package storage elige el backend de persistencia (PostgreSQL o memoria) y el almacén de
// carritos en espera (Redis o memoria) según la configuración.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/PuntoVenta-api/internal/application/pos"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/memory"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/PuntoVenta-api/internal/infrastructure/redis"
	"github.com/jhoicas/PuntoVenta-api/pkg/config"
	"github.com/rs/zerolog"
)

// Backend repositorios listos para construir los casos de uso.
type Backend struct {
	Tx        repository.TxRunner
	Repos     repository.TxRepos
	Companies repository.CompanyRepository
	Users     repository.UserRepository
	Roles     repository.RoleRepository
	Reports   repository.ReportRepository

	HeldOrders pos.HeldOrderStore
	Locker     pos.Locker

	// Memory indica que los datos viven en el proceso (se pierden al reiniciar).
	Memory bool

	closers []func()
}

// Close libera conexiones en orden inverso de apertura.
func (b *Backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

// Open conecta la base de datos y, si hay REDIS_ADDR, Redis. Con migrate=true aplica el esquema
// embebido antes de devolver el backend (solo PostgreSQL).
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger, migrate bool) (*Backend, error) {
	b := &Backend{}
	switch cfg.App.Storage {
	case config.StorageMemory:
		store := memory.NewStore()
		b.Tx, b.Repos = store, store.Repos()
		b.Companies, b.Users, b.Roles, b.Reports = store.Companies(), store.Users(), store.Roles(), store.Reports()
		b.Memory = true
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		b.closers = append(b.closers, pool.Close)
		if migrate {
			if _, err := postgres.Migrate(ctx, pool, log); err != nil {
				b.Close()
				return nil, err
			}
		}
		b.Tx = postgres.NewTxRunner(pool)
		b.Repos = postgres.NewRepos(pool)
		b.Companies = postgres.NewCompanyRepository(pool)
		b.Users = postgres.NewUserRepository(pool)
		b.Roles = postgres.NewRoleRepository(pool)
		b.Reports = postgres.NewReportRepository(pool)
	}

	if cfg.Redis.Enabled() {
		client, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.closers = append(b.closers, func() { _ = client.Close() })
		b.HeldOrders = infraredis.NewHeldOrderStore(client, log)
		b.Locker = infraredis.NewLocker(client)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("carritos en espera en Redis")
	} else {
		b.HeldOrders = memory.NewHeldOrderStore()
		b.Locker = memory.NewLocker()
	}
	return b, nil
}
