package cmd

import (
	"fmt"

	"column-sync/core/config"
	"column-sync/core/database"
	"column-sync/core/logger"
	"column-sync/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app bundles what every command needs.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	client storage.Client
}

// bootstrap loads the configuration, builds the logger and the storage
// client. A storage client that cannot be built is logged and left nil.
func bootstrap() (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	a := &app{cfg: cfg, logger: logg}
	if client, err := storage.NewClient(cfg.Storage); err != nil {
		logg.Warn("Object storage unavailable", zap.Error(err))
	} else {
		a.client = client
	}
	return a, nil
}

// connect opens the column store database.
func (a *app) connect() (*gorm.DB, error) {
	db, err := database.Connect(a.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	a.logger.Debug("Connected to database",
		zap.String("driver", a.cfg.Database.Driver),
		zap.String("name", a.cfg.Database.Name))
	return db, nil
}
