package cmd

import (
	"context"
	"fmt"

	"esports-tracker/core/config"
	"esports-tracker/core/database"
	"esports-tracker/core/fetcher"
	"esports-tracker/core/logger"
	"esports-tracker/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// bootstrap loads configuration and builds the logger.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logg)
	return cfg, logg, nil
}

// newFetcher builds the HTTP fetcher with the persistence backend selected by cfg.Fetcher.Persist.
// Only the selected backend is connected.
func newFetcher(ctx context.Context, cfg *config.Config, logg *zap.Logger) (*fetcher.HTTPFetcher, error) {
	if !cfg.Fetcher.IsValidPersist() {
		return nil, fmt.Errorf("unknown fetch persistence backend %q", cfg.Fetcher.Persist)
	}

	var client storage.Client
	var db *gorm.DB
	switch cfg.Fetcher.Persist {
	case fetcher.PersistStorage:
		c, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		client = c
	case fetcher.PersistDatabase:
		conn, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		db = conn
		logg.Info("Connected to response database", zap.String("driver", cfg.Database.Driver))
	}

	store, err := fetcher.NewStore(ctx, cfg.Fetcher, client, cfg.Storage.Bucket, db)
	if err != nil {
		return nil, fmt.Errorf("failed to create response store: %w", err)
	}
	return fetcher.NewHTTPFetcher(cfg.Fetcher, store, logg), nil
}
