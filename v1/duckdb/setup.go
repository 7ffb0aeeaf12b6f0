package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/Aleph-Alpha/orm/v1/command"
	"github.com/Aleph-Alpha/orm/v1/connector"
	"github.com/Aleph-Alpha/orm/v1/logger"
)

const driverName = "duckdb"

// DuckDB is an in-process database reachable through the connector API.
type DuckDB struct {
	*connector.SQL

	cfg Config
	db  *sql.DB
	log logger.Logger
}

var _ connector.Connector = (*DuckDB)(nil)

// Option configures a DuckDB instance.
type Option func(*DuckDB)

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(l logger.Logger) Option {
	return func(d *DuckDB) {
		if l != nil {
			d.log = l
		}
	}
}

// New opens the database described by cfg and verifies it with a ping.
func New(cfg Config, opts ...Option) (*DuckDB, error) {
	d := &DuckDB{cfg: cfg, log: logger.NewNopLogger()}
	for _, opt := range opts {
		opt(d)
	}

	dsn := cfg.Path
	if cfg.InMemory() {
		dsn = ""
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb database: %w", err)
	}

	if n := cfg.ConnectionDetails.MaxOpenConns; n > 0 {
		db.SetMaxOpenConns(n)
	}
	if n := cfg.ConnectionDetails.MaxIdleConns; n > 0 {
		db.SetMaxIdleConns(n)
	}
	if cfg.ConnectionDetails.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnectionDetails.ConnMaxLifetime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping duckdb database: %w", err)
	}

	d.db = db
	d.SQL = connector.NewSQL(db, command.DuckDB)
	d.log.Info("opened duckdb database", nil, map[string]interface{}{
		"path":      dsn,
		"in_memory": cfg.InMemory(),
	})
	return d, nil
}

// DB returns the underlying pool.
func (d *DuckDB) DB() *sql.DB {
	return d.db
}

// Close closes the pool. Later calls do nothing.
func (d *DuckDB) Close() error {
	if err := d.SQL.Close(); err != nil {
		return fmt.Errorf("failed to close duckdb database: %w", err)
	}
	return nil
}
