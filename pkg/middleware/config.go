package middleware

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// CORSConfig holds CORS policy settings.
type CORSConfig struct {
	Enabled          bool     `toml:"enabled"`
	Origins          []string `toml:"origins"`
	AllowedMethods   []string `toml:"allowed_methods"`
	AllowedHeaders   []string `toml:"allowed_headers"`
	AllowCredentials bool     `toml:"allow_credentials"`
	MaxAge           int      `toml:"max_age"`
}

// CORSEnv names the environment variables that override CORSConfig.
type CORSEnv struct {
	Enabled          string
	Origins          string
	AllowedMethods   string
	AllowedHeaders   string
	AllowCredentials string
	MaxAge           string
}

// Finalize applies defaults and environment variable overrides.
func (c *CORSConfig) Finalize(env *CORSEnv) error {
	if len(c.AllowedMethods) == 0 {
		c.AllowedMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	}
	if len(c.AllowedHeaders) == 0 {
		c.AllowedHeaders = []string{"Content-Type", "Authorization"}
	}
	if c.MaxAge <= 0 {
		c.MaxAge = 3600
	}

	if env == nil {
		return nil
	}
	envBool(env.Enabled, &c.Enabled)
	envList(env.Origins, &c.Origins)
	envList(env.AllowedMethods, &c.AllowedMethods)
	envList(env.AllowedHeaders, &c.AllowedHeaders)
	envBool(env.AllowCredentials, &c.AllowCredentials)
	if env.MaxAge != "" {
		if v, err := strconv.Atoi(os.Getenv(env.MaxAge)); err == nil {
			c.MaxAge = v
		}
	}
	return nil
}

// Merge overwrites fields from overlay. Booleans always apply; slices and
// MaxAge only when set.
func (c *CORSConfig) Merge(overlay *CORSConfig) {
	c.Enabled = overlay.Enabled
	c.AllowCredentials = overlay.AllowCredentials

	if overlay.Origins != nil {
		c.Origins = overlay.Origins
	}
	if overlay.AllowedMethods != nil {
		c.AllowedMethods = overlay.AllowedMethods
	}
	if overlay.AllowedHeaders != nil {
		c.AllowedHeaders = overlay.AllowedHeaders
	}
	if overlay.MaxAge > 0 {
		c.MaxAge = overlay.MaxAge
	}
}

// AuthConfig enables OIDC bearer-token verification for the API.
type AuthConfig struct {
	Enabled  bool   `toml:"enabled"`
	Issuer   string `toml:"issuer"`
	ClientID string `toml:"client_id"`
}

// AuthEnv names the environment variables that override AuthConfig.
type AuthEnv struct {
	Enabled  string
	Issuer   string
	ClientID string
}

// Finalize applies environment variable overrides and validation.
func (c *AuthConfig) Finalize(env *AuthEnv) error {
	if env != nil {
		envBool(env.Enabled, &c.Enabled)
		envString(env.Issuer, &c.Issuer)
		envString(env.ClientID, &c.ClientID)
	}

	if !c.Enabled {
		return nil
	}
	if c.Issuer == "" {
		return fmt.Errorf("issuer required when auth is enabled")
	}
	if c.ClientID == "" {
		return fmt.Errorf("client_id required when auth is enabled")
	}
	return nil
}

// Merge overwrites fields from overlay. Enabled always applies.
func (c *AuthConfig) Merge(overlay *AuthConfig) {
	c.Enabled = overlay.Enabled
	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
	if overlay.ClientID != "" {
		c.ClientID = overlay.ClientID
	}
}

func envString(name string, dst *string) {
	if name == "" {
		return
	}
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

func envBool(name string, dst *bool) {
	if name == "" {
		return
	}
	if v := os.Getenv(name); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func envList(name string, dst *[]string) {
	if name == "" {
		return
	}
	v := os.Getenv(name)
	if v == "" {
		return
	}

	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	*dst = out
}
