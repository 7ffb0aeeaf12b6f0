package database

import (
	"fmt"

	"github.com/Aleph-Alpha/orm/v1/cassandra"
	"github.com/Aleph-Alpha/orm/v1/connector"
	"github.com/Aleph-Alpha/orm/v1/duckdb"
	"github.com/Aleph-Alpha/orm/v1/logger"
	"github.com/Aleph-Alpha/orm/v1/mariadb"
	"github.com/Aleph-Alpha/orm/v1/observability"
	"github.com/Aleph-Alpha/orm/v1/postgres"
	"github.com/Aleph-Alpha/orm/v1/relational"
	"github.com/Aleph-Alpha/orm/v1/schema"
)

// NewConnector opens the engine selected by cfg.Type.
func NewConnector(cfg Config, log logger.Logger) (connector.Connector, error) {
	switch cfg.Type {
	case TypePostgres:
		if cfg.Postgres == nil {
			return nil, fmt.Errorf("postgres config is required when type=postgres")
		}
		return opened(postgres.NewPostgres(*cfg.Postgres, postgres.WithLogger(log)))

	case TypeMariaDB:
		if cfg.MariaDB == nil {
			return nil, fmt.Errorf("mariadb config is required when type=mariadb")
		}
		return opened(mariadb.NewMariaDB(*cfg.MariaDB, mariadb.WithLogger(log)))

	case TypeCassandra:
		if cfg.Cassandra == nil {
			return nil, fmt.Errorf("cassandra config is required when type=cassandra")
		}
		return opened(cassandra.NewCassandra(*cfg.Cassandra, cassandra.WithLogger(log)))

	case TypeDuckDB:
		if cfg.DuckDB == nil {
			return nil, fmt.Errorf("duckdb config is required when type=duckdb")
		}
		return opened(duckdb.New(*cfg.DuckDB, duckdb.WithLogger(log)))

	default:
		return nil, fmt.Errorf("unsupported database type: %q (must be one of %s, %s, %s, %s)",
			cfg.Type, TypePostgres, TypeMariaDB, TypeCassandra, TypeDuckDB)
	}
}

// ProviderOption configures the schema provider built by NewSchemaProvider.
type ProviderOption func(*providerOptions)

type providerOptions struct {
	log      logger.Logger
	observer observability.Observer
}

// WithLogger sets the provider's logger.
func WithLogger(l logger.Logger) ProviderOption {
	return func(o *providerOptions) { o.log = l }
}

// WithObserver reports catalog reads to obs.
func WithObserver(obs observability.Observer) ProviderOption {
	return func(o *providerOptions) { o.observer = obs }
}

// NewSchemaProvider returns the schema provider matching cfg.Type, reading
// through conn.
func NewSchemaProvider(conn connector.Connector, cfg Config, opts ...ProviderOption) (schema.Provider, error) {
	var o providerOptions
	for _, opt := range opts {
		opt(&o)
	}
	ropts := []relational.Option{relational.WithLogger(o.log), relational.WithObserver(o.observer)}

	switch cfg.Type {
	case TypePostgres:
		return provided(postgres.NewSchemaProvider(conn, ropts...))
	case TypeMariaDB:
		return provided(mariadb.NewSchemaProvider(conn, ropts...))
	case TypeDuckDB:
		return provided(duckdb.NewSchemaProvider(conn, ropts...))
	case TypeCassandra:
		version := ""
		if cfg.Cassandra != nil {
			version = cfg.Cassandra.CatalogVersion
		}
		catalog, err := cassandra.CatalogFor(version)
		if err != nil {
			return nil, err
		}
		return provided(cassandra.NewSchemaProvider(conn, catalog,
			cassandra.WithProviderLogger(o.log), cassandra.WithObserver(o.observer)))
	default:
		return nil, fmt.Errorf("unsupported database type: %q", cfg.Type)
	}
}

// opened and provided keep a failed constructor's nil pointer from becoming a
// non-nil interface value.
func opened[C connector.Connector](c C, err error) (connector.Connector, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}

func provided[P schema.Provider](p P, err error) (schema.Provider, error) {
	if err != nil {
		return nil, err
	}
	return p, nil
}
