// Package cli implements the command surface: init, view, manage and config.
// Commands parse their own flags, open the configured backend and delegate to
// the library facade. All required inputs are collected before any write
// starts, so an interrupted command never leaves a partial write behind.
package cli

import (
	"fmt"

	"github.com/avolkova/shelves/internal/config"
	"github.com/avolkova/shelves/internal/storage"
	"github.com/avolkova/shelves/internal/storage/csvstore"
	"github.com/avolkova/shelves/internal/storage/sqlstore"
)

// openStore picks the backend variant from configuration.
func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendCSV:
		return csvstore.New(cfg.Storage.DataDir), nil
	case config.BackendSQLite:
		return sqlstore.New(cfg.Storage.DatabasePath), nil
	}
	return nil, fmt.Errorf("unknown backend %q (want csv or sqlite)", cfg.Storage.Backend)
}
