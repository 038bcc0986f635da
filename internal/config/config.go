// Package config loads service configuration from config.toml, an optional
// environment overlay, and HSE_* environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/database"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvHSEEnv             = "HSE_ENV"
	EnvHSEShutdownTimeout = "HSE_SHUTDOWN_TIMEOUT"
	EnvHSEVersion         = "HSE_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "HSE_DB_HOST",
	Port:            "HSE_DB_PORT",
	Name:            "HSE_DB_NAME",
	User:            "HSE_DB_USER",
	Password:        "HSE_DB_PASSWORD",
	SSLMode:         "HSE_DB_SSL_MODE",
	ApplicationName: "HSE_DB_APPLICATION_NAME",
	MaxOpenConns:    "HSE_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "HSE_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "HSE_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "HSE_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "HSE_STORAGE_CONTAINER_NAME",
	ConnectionString: "HSE_STORAGE_CONNECTION_STRING",
	AccountURL:       "HSE_STORAGE_ACCOUNT_URL",
}

// Config is the root configuration for the control panel service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	API             APIConfig       `toml:"api"`
	Logging         LoggingConfig   `toml:"logging"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns HSE_ENV, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvHSEEnv); env != "" {
		return env
	}
	return "local"
}

func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads config.toml when present, merges config.<HSE_ENV>.toml over it,
// and finalizes every section. Without files, defaults and environment
// variables supply everything.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Parse decodes TOML data into a Config without finalizing it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sections.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Logging.Merge(&overlay.Logging)
}

// Finalize applies defaults, environment overrides, and validation to every section.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Logging.Finalize(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvHSEShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvHSEVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

func overlayPath() string {
	env := os.Getenv(EnvHSEEnv)
	if env == "" {
		return ""
	}
	path := fmt.Sprintf(OverlayConfigPattern, env)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
