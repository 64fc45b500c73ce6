package main

import (
	"context"
	"fmt"
	"log"

	"github.com/zhouzirui/restaurant-stars/backend/internal/config"
	"github.com/zhouzirui/restaurant-stars/backend/internal/model/catalog"
	catalogService "github.com/zhouzirui/restaurant-stars/backend/internal/service/catalog"
	"github.com/zhouzirui/restaurant-stars/backend/internal/service/catalog/sqlite"
)

// openCatalog picks the catalog backend from configuration:
//   - CATALOG_DSN: SQLite database, optionally bootstrapped from CATALOG_FILE
//   - CATALOG_FILE: YAML file, hot-reloaded when CATALOG_WATCH is set
//   - neither: built-in seed
func openCatalog(ctx context.Context, cfg config.CatalogConfig) (catalog.Store, func(), error) {
	noop := func() {}

	switch cfg.Source() {
	case "sqlite":
		store, err := sqlite.New(cfg.DSN)
		if err != nil {
			return nil, noop, err
		}
		if cfg.File != "" {
			items, err := catalogService.LoadFile(cfg.File)
			if err != nil {
				store.Close()
				return nil, noop, err
			}
			if err := store.Insert(ctx, items...); err != nil {
				store.Close()
				return nil, noop, fmt.Errorf("import %s: %w", cfg.File, err)
			}
			log.Printf("[catalog] imported %d restaurants from %s", len(items), cfg.File)
		}
		return store, func() { store.Close() }, nil

	case "file":
		store := catalog.NewMemoryStore(nil)
		watcher := catalogService.NewWatcher(cfg.File, store)
		if err := watcher.Reload(); err != nil {
			return nil, noop, err
		}
		if cfg.Watch {
			if err := watcher.Start(ctx); err != nil {
				return nil, noop, err
			}
			log.Printf("[catalog] watching %s for changes", cfg.File)
		}
		return store, noop, nil

	default:
		return catalog.NewMemoryStore(catalog.Seed()), noop, nil
	}
}
