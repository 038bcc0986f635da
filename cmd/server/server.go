package main

import (
	"time"

	"github.com/RaphaelCosta21/hse-control-panel-sub001/internal/config"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/internal/infrastructure"
)

// Server bundles the shared infrastructure, the mounted modules, and the HTTP listener.
type Server struct {
	infra   *infrastructure.Infrastructure
	modules *Modules
	http    *httpServer
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	modules.Mount(router)

	infra.Logger.Info(
		"hse control panel initialized",
		"addr", cfg.Server.Addr(),
		"api", modules.API.Prefix(),
		"auth", cfg.API.Auth.Enabled,
	)

	return &Server{
		infra:   infra,
		modules: modules,
		http:    newHTTPServer(&cfg.Server, router, infra.Logger),
	}, nil
}

// Start launches the subsystems and the listener without blocking.
// Readiness flips once every startup hook has returned.
func (s *Server) Start() error {
	if err := s.infra.Start(); err != nil {
		return err
	}
	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("startup complete", "ready", s.infra.Lifecycle.Ready())
	}()

	return nil
}

func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("shutting down", "timeout", timeout)
	return s.infra.Lifecycle.Shutdown(timeout)
}
