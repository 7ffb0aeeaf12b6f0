package postgres

import (
	"fmt"
	"time"
)

// Config defines the connection to a PostgreSQL server.
type Config struct {
	Connection        Connection        `yaml:"connection" mapstructure:"connection"`
	ConnectionDetails ConnectionDetails `yaml:"connection_details" mapstructure:"connection_details"`
}

// Connection holds the server address and credentials.
type Connection struct {
	Host     string `yaml:"host" mapstructure:"host" envconfig:"POSTGRES_HOST"`
	Port     string `yaml:"port" mapstructure:"port" envconfig:"POSTGRES_PORT"`
	User     string `yaml:"user" mapstructure:"user" envconfig:"POSTGRES_USER"`
	Password string `yaml:"password" mapstructure:"password" envconfig:"POSTGRES_PASSWORD"`
	DbName   string `yaml:"db_name" mapstructure:"db_name" envconfig:"POSTGRES_DB"`
	SSLMode  string `yaml:"ssl_mode" mapstructure:"ssl_mode" envconfig:"POSTGRES_SSLMODE"`
}

// ConnectionDetails holds pool settings. Zero values select the defaults.
type ConnectionDetails struct {
	MaxOpenConns    int           `yaml:"max_open_conns" mapstructure:"max_open_conns" envconfig:"POSTGRES_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `yaml:"max_idle_conns" mapstructure:"max_idle_conns" envconfig:"POSTGRES_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" mapstructure:"conn_max_lifetime" envconfig:"POSTGRES_CONN_MAX_LIFETIME"`

	// HealthCheckInterval is how often MonitorConnection pings the server.
	HealthCheckInterval time.Duration `yaml:"health_check_interval" mapstructure:"health_check_interval" envconfig:"POSTGRES_HEALTH_CHECK_INTERVAL"`
}

const (
	defaultMaxOpenConns        = 50
	defaultMaxIdleConns        = 25
	defaultConnMaxLifetime     = time.Minute
	defaultHealthCheckInterval = 10 * time.Second
)

// DSN returns the key/value connection string for cfg.
func (c Config) DSN() string {
	sslMode := c.Connection.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Connection.Host,
		c.Connection.Port,
		c.Connection.User,
		c.Connection.Password,
		c.Connection.DbName,
		sslMode)
}
