// Package config loads CLI configuration from files and environment
// variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Backend names for the persisted progress state.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

// Config holds application configuration.
type Config struct {
	Env         string  `mapstructure:"env"`          // local, prod etc
	Backend     string  `mapstructure:"backend"`      // file or sqlite
	CatalogPath string  `mapstructure:"catalog_path"` // node metadata JSON; optional
	Tracker     Tracker `mapstructure:"tracker"`
}

// Tracker contains exploration tracker tuning.
type Tracker struct {
	FrameInterval time.Duration `mapstructure:"frame_interval"` // recompute coalescing window
	SettleDelay   time.Duration `mapstructure:"settle_delay"`   // post-mount second pass delay
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.Backend != BackendFile && c.Backend != BackendSQLite {
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
	return nil
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath("$XDG_CONFIG_HOME/questlog")
	v.AddConfigPath("$HOME/.config/questlog")

	v.SetDefault("env", "local")
	v.SetDefault("backend", BackendFile)
	v.SetDefault("catalog_path", "")
	v.SetDefault("tracker.frame_interval", "16ms")
	v.SetDefault("tracker.settle_delay", "500ms")

	v.SetEnvPrefix("questlog")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("env", "APP_ENV")

	// The config file is optional; defaults and env cover everything.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
