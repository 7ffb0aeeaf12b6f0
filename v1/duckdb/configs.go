package duckdb

import "time"

// Config defines the DuckDB database. An empty Path opens a private
// in-memory database.
type Config struct {
	// Path is the database file, or empty / ":memory:" for an in-memory database.
	Path string `yaml:"path" mapstructure:"path" envconfig:"DUCKDB_PATH"`

	ConnectionDetails ConnectionDetails `yaml:"connection_details" mapstructure:"connection_details"`
}

// ConnectionDetails holds pool settings. Zero values keep the defaults.
type ConnectionDetails struct {
	MaxOpenConns    int           `yaml:"max_open_conns" mapstructure:"max_open_conns" envconfig:"DUCKDB_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `yaml:"max_idle_conns" mapstructure:"max_idle_conns" envconfig:"DUCKDB_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" mapstructure:"conn_max_lifetime" envconfig:"DUCKDB_CONN_MAX_LIFETIME"`
}

// InMemory reports whether cfg opens an in-memory database.
func (c Config) InMemory() bool {
	return c.Path == "" || c.Path == ":memory:"
}
