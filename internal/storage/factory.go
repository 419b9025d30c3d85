package storage

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Config selects and configures a storage backend
type Config struct {
	Type       string // memory, sqlite or postgres
	SqlitePath string // empty for an in-memory sqlite database
	Postgres   PostgresConfig
}

// NewBackend creates a storage backend based on configuration
func NewBackend(cfg Config, log zerolog.Logger) (Backend, error) {
	switch cfg.Type {
	case "", "memory":
		return NewInMemoryRepository(), nil
	case "sqlite":
		return OpenSqlite(cfg.SqlitePath, log)
	case "postgres":
		return OpenPostgres(cfg.Postgres, log)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
