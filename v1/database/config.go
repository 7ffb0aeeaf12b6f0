package database

import (
	"github.com/Aleph-Alpha/orm/v1/cassandra"
	"github.com/Aleph-Alpha/orm/v1/duckdb"
	"github.com/Aleph-Alpha/orm/v1/mariadb"
	"github.com/Aleph-Alpha/orm/v1/postgres"
)

// Engine types accepted in Config.Type.
const (
	TypePostgres  = "postgres"
	TypeMariaDB   = "mariadb"
	TypeCassandra = "cassandra"
	TypeDuckDB    = "duckdb"
)

// Config selects one engine and carries its configuration.
// Use one of the helper functions (PostgresConfig, MariaDBConfig,
// CassandraConfig, DuckDBConfig) to create it, or LoadConfig to read it from
// a file.
type Config struct {
	// Type is the engine type: "postgres", "mariadb", "cassandra" or "duckdb".
	Type string `yaml:"type" mapstructure:"type"`

	// Postgres configuration (used when Type = "postgres")
	Postgres *postgres.Config `yaml:"postgres" mapstructure:"postgres"`

	// MariaDB configuration (used when Type = "mariadb")
	MariaDB *mariadb.Config `yaml:"mariadb" mapstructure:"mariadb"`

	// Cassandra configuration (used when Type = "cassandra")
	Cassandra *cassandra.Config `yaml:"cassandra" mapstructure:"cassandra"`

	// DuckDB configuration (used when Type = "duckdb")
	DuckDB *duckdb.Config `yaml:"duckdb" mapstructure:"duckdb"`
}

// PostgresConfig creates a database.Config for PostgreSQL.
//
// Example:
//
//	fx.Provide(func() database.Config {
//	    return database.PostgresConfig(postgres.Config{
//	        Connection: postgres.Connection{
//	            Host: "localhost",
//	            Port: "5432",
//	            // ...
//	        },
//	    })
//	})
func PostgresConfig(cfg postgres.Config) Config {
	return Config{
		Type:     TypePostgres,
		Postgres: &cfg,
	}
}

// MariaDBConfig creates a database.Config for MariaDB/MySQL.
func MariaDBConfig(cfg mariadb.Config) Config {
	return Config{
		Type:    TypeMariaDB,
		MariaDB: &cfg,
	}
}

// CassandraConfig creates a database.Config for Apache Cassandra.
func CassandraConfig(cfg cassandra.Config) Config {
	return Config{
		Type:      TypeCassandra,
		Cassandra: &cfg,
	}
}

// DuckDBConfig creates a database.Config for an embedded DuckDB database.
func DuckDBConfig(cfg duckdb.Config) Config {
	return Config{
		Type:   TypeDuckDB,
		DuckDB: &cfg,
	}
}
