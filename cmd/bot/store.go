package main

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"ctabot/internal/config"
	"ctabot/internal/infrastructure/database"
	"ctabot/internal/infrastructure/filestore"
	"ctabot/internal/ports/output"
)

// openRepository builds the alert repository selected by STORE_BACKEND. The
// returned func releases it.
func openRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (output.AlertRepository, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		if err := database.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			return nil, nil, err
		}
		pool, err := database.NewPool(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, nil, err
		}
		return database.NewAlertRepository(pool), pool.Close, nil
	case config.BackendFile:
		return filestore.NewAlertRepository(afero.NewOsFs(), cfg.AlertsFile), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
