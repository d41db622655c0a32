// Package store abre el adaptador de persistencia configurado y expone sus
// puertos con un ciclo de vida explícito (Open / Close).
package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/category-api/internal/application/usecase"
	"github.com/jhoicas/category-api/internal/domain/repository"
	"github.com/jhoicas/category-api/internal/infrastructure/memory"
	"github.com/jhoicas/category-api/internal/infrastructure/postgres"
	"github.com/jhoicas/category-api/pkg/config"
)

// Store agrupa los puertos de persistencia de un driver.
type Store struct {
	Categories repository.CategoryRepository
	Tx         usecase.TxRunner
	close      func()
}

// Close libera las conexiones del store.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open construye el store según cfg.Store.Driver.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		return OpenMemory(), nil
	case config.StoreDriverPostgres:
		return openPostgres(ctx, cfg.DB)
	default:
		return nil, fmt.Errorf("driver de store desconocido: %q", cfg.Store.Driver)
	}
}

// OpenMemory construye un store en memoria vacío.
func OpenMemory() *Store {
	repo := memory.NewCategoryRepository()
	return &Store{Categories: repo, Tx: memory.NewTxRunner(repo)}
}

func openPostgres(ctx context.Context, cfg config.DBConfig) (*Store, error) {
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	if cfg.AutoMigrate {
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}
	txRunner, err := postgres.NewTxRunner(pool, cfg.TxIsolation)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{
		Categories: postgres.NewCategoryRepository(pool),
		Tx:         txRunner,
		close:      pool.Close,
	}, nil
}
