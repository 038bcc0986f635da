// Package api assembles the API module from the domain systems and wires its
// middleware stack.
package api

import (
	"fmt"
	"net/http"

	"github.com/RaphaelCosta21/hse-control-panel-sub001/internal/config"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/internal/infrastructure"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/middleware"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/module"
)

// NewModule creates the API module. When auth is enabled the issuer's OIDC
// discovery document is fetched here, so an unreachable issuer fails startup.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	var auth middleware.Func
	if cfg.API.Auth.Enabled {
		verifier, err := middleware.NewVerifier(infra.Lifecycle.Context(), &cfg.API.Auth)
		if err != nil {
			return nil, fmt.Errorf("oidc verifier: %w", err)
		}
		auth = middleware.Auth(verifier, infra.Logger)
	}

	return newModule(cfg, infra, auth), nil
}

func newModule(cfg *config.Config, infra *infrastructure.Infrastructure, auth middleware.Func) *module.Module {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(
		middleware.Logger(runtime.Logger),
		middleware.CORS(&cfg.API.CORS),
		auth,
		middleware.MaxBytes(runtime.MaxBodySize),
	)

	return m
}
