package mariadb

import "time"

// Config defines the connection to a MariaDB or MySQL server.
type Config struct {
	Connection        Connection        `yaml:"connection" mapstructure:"connection"`
	ConnectionDetails ConnectionDetails `yaml:"connection_details" mapstructure:"connection_details"`
}

// Connection holds the server address, credentials and driver parameters.
type Connection struct {
	Host     string `yaml:"host" mapstructure:"host" envconfig:"MARIADB_HOST"`
	Port     string `yaml:"port" mapstructure:"port" envconfig:"MARIADB_PORT"`
	User     string `yaml:"user" mapstructure:"user" envconfig:"MARIADB_USER"`
	Password string `yaml:"password" mapstructure:"password" envconfig:"MARIADB_PASSWORD"`
	DbName   string `yaml:"db_name" mapstructure:"db_name" envconfig:"MARIADB_DATABASE"`

	// Charset defaults to utf8mb4.
	Charset string `yaml:"charset" mapstructure:"charset" envconfig:"MARIADB_CHARSET"`

	// ParseTime scans DATE and DATETIME columns into time.Time.
	ParseTime bool `yaml:"parse_time" mapstructure:"parse_time" envconfig:"MARIADB_PARSE_TIME"`

	// Loc is the time zone name for parsed times. Defaults to Local.
	Loc string `yaml:"loc" mapstructure:"loc" envconfig:"MARIADB_LOC"`

	// TLS is a registered TLS config name, "true", "false" or "skip-verify".
	TLS string `yaml:"tls" mapstructure:"tls" envconfig:"MARIADB_TLS"`

	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout" envconfig:"MARIADB_TIMEOUT"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout" envconfig:"MARIADB_READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout" envconfig:"MARIADB_WRITE_TIMEOUT"`
}

// ConnectionDetails holds pool settings. Zero values select the defaults.
type ConnectionDetails struct {
	MaxOpenConns    int           `yaml:"max_open_conns" mapstructure:"max_open_conns" envconfig:"MARIADB_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `yaml:"max_idle_conns" mapstructure:"max_idle_conns" envconfig:"MARIADB_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" mapstructure:"conn_max_lifetime" envconfig:"MARIADB_CONN_MAX_LIFETIME"`

	HealthCheckInterval time.Duration `yaml:"health_check_interval" mapstructure:"health_check_interval" envconfig:"MARIADB_HEALTH_CHECK_INTERVAL"`
}
