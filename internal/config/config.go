// Package config loads and validates the application configuration.
//
// Configuration comes from an optional YAML file with environment
// variable overrides (VERDANT_*); a .env file is honored in the serve
// path. There is no ambient global config: the loaded value is passed
// explicitly to whatever needs it.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/verdant-io/verdant/internal/logging"
)

// DefaultDatabasePath is used when no database path is configured.
const DefaultDatabasePath = "verdant.db"

// DefaultServerAddr is the default listen address for serve.
const DefaultServerAddr = ":8080"

// Config is the top-level application configuration.
type Config struct {
	Logging  logging.Config `yaml:"logging"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Factors  FactorsConfig  `yaml:"factors"`
}

// ServerConfig configures the REST API.
type ServerConfig struct {
	Addr string `yaml:"addr"`

	// AllowedOrigins feeds the CORS middleware; empty allows none.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// DatabaseConfig configures the SQLite store.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// FactorsConfig configures emission-factor dataset overlays applied on
// top of the compiled-in baseline, in order.
type FactorsConfig struct {
	Datasets []string `yaml:"datasets"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Logging:  logging.Config{Level: "info", Format: "console"},
		Server:   ServerConfig{Addr: DefaultServerAddr},
		Database: DatabaseConfig{Path: DefaultDatabasePath},
	}
}

// Load reads configuration from path (optional), then applies
// environment overrides. A missing file is not an error; a malformed
// one is.
func Load(path string) (*Config, error) {
	// Best-effort .env; absence is the normal case.
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Fall through to defaults.
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays VERDANT_* environment variables onto the config.
func (c *Config) applyEnv() {
	if v := os.Getenv("VERDANT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("VERDANT_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("VERDANT_SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("VERDANT_DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("VERDANT_FACTOR_DATASETS"); v != "" {
		c.Factors.Datasets = splitNonEmpty(v)
	}
}

// Validate checks the configuration for values that would fail later in
// a less obvious place.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	for _, ds := range c.Factors.Datasets {
		if strings.TrimSpace(ds) == "" {
			return fmt.Errorf("factors.datasets contains an empty path")
		}
	}
	return nil
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
