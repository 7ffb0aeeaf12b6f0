package redis

import "time"

// Config defines the Redis server used to cache catalog reads.
type Config struct {
	// Host is the Redis server hostname or IP address
	// Default: "localhost"
	Host string `yaml:"host" mapstructure:"host" envconfig:"REDIS_HOST"`

	// Port is the Redis server port
	// Default: 6379
	Port int `yaml:"port" mapstructure:"port" envconfig:"REDIS_PORT"`

	// Username is the Redis username for ACL authentication (Redis 6.0+)
	Username string `yaml:"username" mapstructure:"username" envconfig:"REDIS_USERNAME"`

	// Password is the Redis password for authentication
	Password string `yaml:"password" mapstructure:"password" envconfig:"REDIS_PASSWORD"`

	// DB is the Redis database number to use
	DB int `yaml:"db" mapstructure:"db" envconfig:"REDIS_DB"`

	// PoolSize is the maximum number of socket connections
	// Default: 10 per CPU
	PoolSize int `yaml:"pool_size" mapstructure:"pool_size" envconfig:"REDIS_POOL_SIZE"`

	// MaxRetries is the maximum number of retries before giving up
	// Default: 3
	MaxRetries int `yaml:"max_retries" mapstructure:"max_retries" envconfig:"REDIS_MAX_RETRIES"`

	DialTimeout  time.Duration `yaml:"dial_timeout" mapstructure:"dial_timeout" envconfig:"REDIS_DIAL_TIMEOUT"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout" envconfig:"REDIS_READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout" envconfig:"REDIS_WRITE_TIMEOUT"`

	// KeyPrefix namespaces every cache key.
	// Default: "orm:schema"
	KeyPrefix string `yaml:"key_prefix" mapstructure:"key_prefix" envconfig:"REDIS_KEY_PREFIX"`

	// TTL is how long a cached catalog read stays valid. Zero keeps entries
	// until they are invalidated.
	// Default: 10 minutes
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl" envconfig:"REDIS_TTL"`
}

// Default values for Redis configuration
const (
	DefaultHost        = "localhost"
	DefaultPort        = 6379
	DefaultMaxRetries  = 3
	DefaultDialTimeout = 5 * time.Second
	DefaultReadTimeout = 3 * time.Second
	DefaultKeyPrefix   = "orm:schema"
	DefaultTTL         = 10 * time.Minute
)

func (c Config) withDefaults() Config {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = DefaultDialTimeout
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = DefaultKeyPrefix
	}
	if c.TTL == 0 {
		c.TTL = DefaultTTL
	}
	return c
}
