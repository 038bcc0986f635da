// Package infrastructure assembles the shared systems every domain depends on:
// lifecycle coordination, logging, the clock, the database pool, and blob storage.
package infrastructure

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/RaphaelCosta21/hse-control-panel-sub001/internal/config"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/clock"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/database"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/lifecycle"
	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Clock     clock.Clock
	Database  database.System
	Storage   storage.System
}

// New builds every system from cfg without starting any of them.
func New(cfg *config.Config) (*Infrastructure, error) {
	return build(cfg, os.Stderr)
}

func build(cfg *config.Config, out io.Writer) (*Infrastructure, error) {
	logger := cfg.Logging.NewLogger(out).With("version", cfg.Version, "env", cfg.Env())

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		Clock:     clock.System{},
		Database:  db,
		Storage:   store,
	}, nil
}

// Start registers database and storage hooks and tracks their readiness.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	i.Lifecycle.Track(i.Database)

	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	i.Lifecycle.Track(i.Storage)

	return nil
}
