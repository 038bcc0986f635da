package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	EnvLogLevel  = "HSE_LOG_LEVEL"
	EnvLogFormat = "HSE_LOG_FORMAT"
)

// LoggingConfig selects the slog level and handler.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

func (c *LoggingConfig) Finalize() error {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "text"
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Format = v
	}

	if _, err := ParseLevel(c.Level); err != nil {
		return err
	}
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid format %q: want text or json", c.Format)
	}
	return nil
}

func (c *LoggingConfig) Merge(overlay *LoggingConfig) {
	if overlay.Level != "" {
		c.Level = overlay.Level
	}
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
}

// NewLogger builds a slog.Logger writing to w.
func (c *LoggingConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(c.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel maps debug, info, warn/warning, and error to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid level %q", s)
	}
}
