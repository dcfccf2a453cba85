package app

import (
	"log/slog"

	"micro_go/internal/infra"
	"micro_go/internal/infra/storage"
)

// Bootstrap orchestrates the application startup sequence
type Bootstrap struct {
	Config  *infra.Config
	Storage *storage.Storage
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize performs core system initialization. Any error returned here
// is fatal: nothing starts ingesting until this succeeds.
func (b *Bootstrap) Initialize(configPath string) error {
	slog.Info("Bootstrapping Micro Go...")

	// 1. Load Config
	cfg, err := infra.LoadConfig(configPath)
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	// 2. Setup Logger
	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	// 3. Initialize Storage (only needed when sampling is on)
	if cfg.Recorder.Enabled {
		store, err := storage.NewStorage()
		if err != nil {
			return err
		}
		b.Storage = store
		slog.Info("Sample database initialized")
	}

	return nil
}
