package cmd

import (
	"fmt"

	"vmp-sync/core/config"
	"vmp-sync/core/database"
	"vmp-sync/core/images"
	"vmp-sync/core/logger"
	"vmp-sync/core/solr"
	"vmp-sync/core/storage"
	"vmp-sync/core/vmp"
	"vmp-sync/feature/occurrence"
	"vmp-sync/feature/registration"
	"vmp-sync/feature/servicehours"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// env is the shared wiring every command needs: configuration, logging and
// the ledger database. Features are built on top of it explicitly; nothing
// is registered globally.
type env struct {
	cfg  *config.Config
	logg *zap.Logger
	db   *gorm.DB
}

func buildEnv() (*env, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the ledger database: %w", err)
	}

	return &env{cfg: cfg, logg: logg, db: db}, nil
}

func (e *env) occurrenceFeature() (*occurrence.Feature, error) {
	archive, err := storage.NewArchiver(e.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create archiver: %w", err)
	}

	return occurrence.NewFeature(
		e.cfg.Sync,
		solr.NewClient(e.cfg.Solr),
		vmp.NewClient(e.cfg.Vmp, e.logg),
		e.db,
		images.NewHTTPFetcher(0),
		archive,
		e.logg,
	), nil
}

func (e *env) servicehoursFeature() *servicehours.Feature {
	return servicehours.NewFeature(e.cfg.Sync, e.db, vmp.NewClient(e.cfg.Vmp, e.logg), e.logg)
}

func (e *env) registrationFeature() *registration.Feature {
	return registration.NewFeature(e.db, vmp.NewClient(e.cfg.Vmp, e.logg), e.logg)
}
