package database

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides read by LoadConfig. Nested keys
// join with underscores, so duckdb.path is overridden by ORM_DUCKDB_PATH.
const EnvPrefix = "ORM"

// LoadConfig reads a Config from the YAML file at path. Environment variables
// override keys present in the file.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Type = strings.ToLower(strings.TrimSpace(cfg.Type))
	return cfg, nil
}
