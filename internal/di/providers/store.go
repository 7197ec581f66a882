package providers

import (
	"fmt"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/cardvault/cardvault-server/internal/config"
	"github.com/cardvault/cardvault-server/internal/logger"
	"github.com/cardvault/cardvault-server/internal/service"
	"github.com/cardvault/cardvault-server/internal/store"
	"github.com/cardvault/cardvault-server/internal/store/sqlite"
)

// StoreHandle wraps the selected store engine with shutdown capability.
type StoreHandle struct {
	service.SeriesStore
	close func() error
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.close()
}

// ProvideStore provides the series store selected by configuration.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	switch cfg.Store.Engine {
	case config.EngineBadger:
		dbPath := filepath.Join(cfg.Store.DataPath, "badger")
		db, err := store.Open(dbPath, log.Logger)
		if err != nil {
			return nil, err
		}
		log.Info("Badger store initialized", "path", dbPath)
		return &StoreHandle{SeriesStore: db, close: db.Close}, nil

	case config.EngineSQLite:
		dbPath := filepath.Join(cfg.Store.DataPath, "cardvault.db")
		db, err := sqlite.Open(dbPath, log.Logger)
		if err != nil {
			return nil, err
		}
		log.Info("SQLite store initialized", "path", dbPath)
		return &StoreHandle{SeriesStore: db, close: db.Close}, nil

	default:
		return nil, fmt.Errorf("unknown store engine: %s", cfg.Store.Engine)
	}
}
