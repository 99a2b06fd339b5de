package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"projectmgr/internal/config"
)

// PingTimeout bounds the connectivity check performed by Open.
const PingTimeout = 10 * time.Second

// MemoryPath selects a private in-memory SQLite database.
const MemoryPath = ":memory:"

// Open connects to the store described by cfg, sizes the pool and creates
// the tables when they do not exist yet.
func Open(cfg config.StoreConfig, log zerolog.Logger) (*SQLRepository, error) {
	d, err := dialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	inMemory := cfg.IsSQLite() && cfg.Path == MemoryPath
	if cfg.IsSQLite() && !inMemory {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	// Every SQLite connection to :memory: opens its own empty database, so
	// the pool is pinned to one connection that is never recycled.
	if inMemory {
		cfg.MaxOpenConns = 1
		cfg.MaxIdleConns = 1
		cfg.ConnMaxLifetime = 0
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), PingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping store: %w", err)
	}

	if err := ensureSchema(ctx, db, d); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare schema: %w", err)
	}

	log.Info().Str("driver", d.name).Int("pool_size", cfg.MaxOpenConns).Msg("connected to store")

	return &SQLRepository{
		db:      db,
		dialect: d,
		log:     log.With().Str("component", "repository").Logger(),
	}, nil
}

// Close closes the connection pool.
func (r *SQLRepository) Close() error {
	return r.db.Close()
}
