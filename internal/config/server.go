package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

const (
	EnvServerHost              = "HSE_SERVER_HOST"
	EnvServerPort              = "HSE_SERVER_PORT"
	EnvServerReadTimeout       = "HSE_SERVER_READ_TIMEOUT"
	EnvServerReadHeaderTimeout = "HSE_SERVER_READ_HEADER_TIMEOUT"
	EnvServerWriteTimeout      = "HSE_SERVER_WRITE_TIMEOUT"
	EnvServerShutdownTimeout   = "HSE_SERVER_SHUTDOWN_TIMEOUT"
)

// ServerConfig holds HTTP listener parameters. Durations use time.ParseDuration syntax.
type ServerConfig struct {
	Host              string `toml:"host"`
	Port              int    `toml:"port"`
	ReadTimeout       string `toml:"read_timeout"`
	ReadHeaderTimeout string `toml:"read_header_timeout"`
	WriteTimeout      string `toml:"write_timeout"`
	ShutdownTimeout   string `toml:"shutdown_timeout"`
}

func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *ServerConfig) ReadTimeoutDuration() time.Duration       { return duration(c.ReadTimeout) }
func (c *ServerConfig) ReadHeaderTimeoutDuration() time.Duration { return duration(c.ReadHeaderTimeout) }
func (c *ServerConfig) WriteTimeoutDuration() time.Duration      { return duration(c.WriteTimeout) }
func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration   { return duration(c.ShutdownTimeout) }

func (c *ServerConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

func (c *ServerConfig) Merge(overlay *ServerConfig) {
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
	if overlay.ReadTimeout != "" {
		c.ReadTimeout = overlay.ReadTimeout
	}
	if overlay.ReadHeaderTimeout != "" {
		c.ReadHeaderTimeout = overlay.ReadHeaderTimeout
	}
	if overlay.WriteTimeout != "" {
		c.WriteTimeout = overlay.WriteTimeout
	}
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
}

func (c *ServerConfig) loadDefaults() {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.ReadTimeout == "" {
		c.ReadTimeout = "30s"
	}
	if c.ReadHeaderTimeout == "" {
		c.ReadHeaderTimeout = "10s"
	}
	if c.WriteTimeout == "" {
		c.WriteTimeout = "2m"
	}
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
}

func (c *ServerConfig) loadEnv() {
	if v := os.Getenv(EnvServerHost); v != "" {
		c.Host = v
	}
	if v := os.Getenv(EnvServerPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	for name, dst := range map[string]*string{
		EnvServerReadTimeout:       &c.ReadTimeout,
		EnvServerReadHeaderTimeout: &c.ReadHeaderTimeout,
		EnvServerWriteTimeout:      &c.WriteTimeout,
		EnvServerShutdownTimeout:   &c.ShutdownTimeout,
	} {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}
}

func (c *ServerConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	for name, v := range map[string]string{
		"read_timeout":        c.ReadTimeout,
		"read_header_timeout": c.ReadHeaderTimeout,
		"write_timeout":       c.WriteTimeout,
		"shutdown_timeout":    c.ShutdownTimeout,
	} {
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	return nil
}

func duration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}
