package storage

import (
	"fmt"

	"github.com/nilecart/storefront-backend/internal/infrastructure/config"
)

// Open constructs the Repository selected by configuration.
func Open(cfg config.StorageConfig) (Repository, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return NewStorage(cfg.DatabasePath)
	case "postgres":
		return NewPostgres(cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
