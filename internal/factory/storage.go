// Package factory builds the configurable components (store, completion
// provider) from config.
package factory

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/flathive/flathive/internal/config"
	storepkg "github.com/flathive/flathive/internal/store"
	storemem "github.com/flathive/flathive/internal/store/memstore"
	storepg "github.com/flathive/flathive/internal/store/postgres"
	storelite "github.com/flathive/flathive/internal/store/sqlite"
)

// NewStore returns the store.Store selected by cfg.StoreDriver. Schema setup
// runs synchronously; a store that comes back without error is ready to
// serve.
func NewStore(cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		s, err := storepg.New(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		log.Info().Str("driver", cfg.StoreDriver).Msg("store ready")
		return s, nil

	case config.DriverSQLite:
		s, err := storelite.New(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		log.Info().Str("driver", cfg.StoreDriver).Str("path", cfg.SQLitePath).Msg("store ready")
		return s, nil

	case config.DriverMemory:
		var opts []storemem.Option
		if cfg.Seed {
			opts = append(opts, storemem.WithSeed())
		}
		log.Info().Str("driver", cfg.StoreDriver).Bool("seed", cfg.Seed).Msg("store ready")
		return storemem.New(opts...), nil

	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER: %s", cfg.StoreDriver)
	}
}
