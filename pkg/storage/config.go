package storage

import (
	"fmt"
	"os"
)

// Config holds Azure Blob Storage parameters. Either ConnectionString or
// AccountURL must be set; AccountURL authenticates with the default Azure
// credential chain (managed identity, environment, Azure CLI).
type Config struct {
	ContainerName    string `toml:"container_name"`
	ConnectionString string `toml:"connection_string"`
	AccountURL       string `toml:"account_url"`
}

// Env names the environment variables that override Config.
type Env struct {
	ContainerName    string
	ConnectionString string
	AccountURL       string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	if c.ContainerName == "" {
		c.ContainerName = "hse-exports"
	}
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.ContainerName != "" {
		c.ContainerName = overlay.ContainerName
	}
	if overlay.ConnectionString != "" {
		c.ConnectionString = overlay.ConnectionString
	}
	if overlay.AccountURL != "" {
		c.AccountURL = overlay.AccountURL
	}
}

func (c *Config) loadEnv(env *Env) {
	lookup := func(name string, dst *string) {
		if name == "" {
			return
		}
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}
	lookup(env.ContainerName, &c.ContainerName)
	lookup(env.ConnectionString, &c.ConnectionString)
	lookup(env.AccountURL, &c.AccountURL)
}

func (c *Config) validate() error {
	if c.ContainerName == "" {
		return fmt.Errorf("container_name required")
	}
	if c.ConnectionString == "" && c.AccountURL == "" {
		return fmt.Errorf("connection_string or account_url required")
	}
	return nil
}
