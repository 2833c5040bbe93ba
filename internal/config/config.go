package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. COURSETRACK_DB_PATH.
const EnvPrefix = "COURSETRACK"

// Config holds application configuration loaded from defaults, an optional
// config file and environment variables.
type Config struct {
	Env         string `mapstructure:"env"`          // "production" switches to JSON logs
	LogLevel    string `mapstructure:"log_level"`    // debug, info, warn, error
	DBPath      string `mapstructure:"db_path"`      // SQLite file holding the progress record
	StoreURL    string `mapstructure:"store_url"`    // redis:// URL; overrides DBPath when set
	StorageKey  string `mapstructure:"storage_key"`  // key the progress record is stored under
	CatalogPath string `mapstructure:"catalog_path"` // YAML curriculum replacing the built-in one
	MetricsAddr string `mapstructure:"metrics_addr"` // listen address for /metrics in watch mode
}

// DefaultDir is ~/.coursetrack, falling back to the working directory when
// the home directory cannot be resolved.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".coursetrack"
	}
	return filepath.Join(home, ".coursetrack")
}

// Load reads configuration. configFile, when non-empty, must exist; otherwise
// config.yaml is looked up in DefaultDir and skipped when absent.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	dir := DefaultDir()

	v.SetDefault("env", "local")
	v.SetDefault("log_level", "warn")
	v.SetDefault("db_path", filepath.Join(dir, "coursetrack.db"))
	v.SetDefault("store_url", "")
	v.SetDefault("storage_key", "course-tracker-progress")
	v.SetDefault("catalog_path", "")
	v.SetDefault("metrics_addr", ":9464")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	return &cfg, nil
}

// UsesRedis reports whether the progress record lives in Redis.
func (c *Config) UsesRedis() bool {
	return strings.HasPrefix(c.StoreURL, "redis://") || strings.HasPrefix(c.StoreURL, "rediss://")
}
