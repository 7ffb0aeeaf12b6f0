package cassandra

import "time"

// Catalog versions selectable through Config.CatalogVersion.
const (
	// CatalogVersionSystemSchema reads system_schema (Cassandra 3.0 and later).
	CatalogVersionSystemSchema = "system_schema"

	// CatalogVersionLegacy reads system.schema_columnfamilies and
	// system.schema_columns (Cassandra 2.x).
	CatalogVersionLegacy = "legacy"
)

// Config defines the cluster connection.
type Config struct {
	Hosts    []string `yaml:"hosts" mapstructure:"hosts" envconfig:"CASSANDRA_HOSTS"`
	Port     int      `yaml:"port" mapstructure:"port" envconfig:"CASSANDRA_PORT"`
	Keyspace string   `yaml:"keyspace" mapstructure:"keyspace" envconfig:"CASSANDRA_KEYSPACE"`
	Username string   `yaml:"username" mapstructure:"username" envconfig:"CASSANDRA_USERNAME"`
	Password string   `yaml:"password" mapstructure:"password" envconfig:"CASSANDRA_PASSWORD"`

	// Consistency is a gocql consistency name such as "QUORUM" or "LOCAL_ONE".
	// Defaults to QUORUM.
	Consistency string `yaml:"consistency" mapstructure:"consistency" envconfig:"CASSANDRA_CONSISTENCY"`

	Timeout        time.Duration `yaml:"timeout" mapstructure:"timeout" envconfig:"CASSANDRA_TIMEOUT"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" mapstructure:"connect_timeout" envconfig:"CASSANDRA_CONNECT_TIMEOUT"`
	NumConns       int           `yaml:"num_conns" mapstructure:"num_conns" envconfig:"CASSANDRA_NUM_CONNS"`
	Retries        int           `yaml:"retries" mapstructure:"retries" envconfig:"CASSANDRA_RETRIES"`

	// ProtoVersion is the native protocol version. Defaults to 4.
	ProtoVersion int `yaml:"proto_version" mapstructure:"proto_version" envconfig:"CASSANDRA_PROTO_VERSION"`

	// CatalogVersion selects the schema catalog layout. Defaults to
	// CatalogVersionSystemSchema.
	CatalogVersion string `yaml:"catalog_version" mapstructure:"catalog_version" envconfig:"CASSANDRA_CATALOG_VERSION"`
}

const (
	defaultPort         = 9042
	defaultTimeout      = 10 * time.Second
	defaultNumConns     = 2
	defaultRetries      = 3
	defaultProtoVersion = 4
	defaultCQLVersion   = "3.1.0"
	defaultKeepalive    = 5 * time.Minute
)
