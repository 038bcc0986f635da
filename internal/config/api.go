package config

import (
	"fmt"
	"os"

	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/formatting"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/middleware"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/pagination"
)

const defaultMaxBodySize = 1 << 20

var corsEnv = &middleware.CORSEnv{
	Enabled:          "HSE_CORS_ENABLED",
	Origins:          "HSE_CORS_ORIGINS",
	AllowedMethods:   "HSE_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "HSE_CORS_ALLOWED_HEADERS",
	AllowCredentials: "HSE_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "HSE_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "HSE_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "HSE_PAGINATION_MAX_PAGE_SIZE",
}

var authEnv = &middleware.AuthEnv{
	Enabled:  "HSE_AUTH_ENABLED",
	Issuer:   "HSE_AUTH_ISSUER",
	ClientID: "HSE_AUTH_CLIENT_ID",
}

// APIConfig holds API routing, request limits, CORS, pagination, and auth settings.
type APIConfig struct {
	BasePath    string                `toml:"base_path"`
	MaxBodySize string                `toml:"max_body_size"`
	CORS        middleware.CORSConfig `toml:"cors"`
	Pagination  pagination.Config     `toml:"pagination"`
	Auth        middleware.AuthConfig `toml:"auth"`
}

// MaxBodySizeBytes returns the request body limit, falling back to 1MB.
func (c *APIConfig) MaxBodySizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxBodySize)
	if err != nil || size <= 0 {
		return defaultMaxBodySize
	}
	return size
}

func (c *APIConfig) Finalize() error {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "1MB"
	}
	if v := os.Getenv("HSE_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("HSE_API_MAX_BODY_SIZE"); v != "" {
		c.MaxBodySize = v
	}

	if _, err := formatting.ParseBytes(c.MaxBodySize); err != nil {
		return fmt.Errorf("max_body_size: %w", err)
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.Auth.Finalize(authEnv); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	return nil
}

func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}
	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.Auth.Merge(&overlay.Auth)
}
