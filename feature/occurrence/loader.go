package occurrence

import (
	"vmp-sync/core/config"
	"vmp-sync/core/images"
	"vmp-sync/core/solr"
	"vmp-sync/core/storage"
	"vmp-sync/core/vmp"
	"vmp-sync/feature/occurrence/mapper"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the occurrence feature.
func NewFeature(cfg config.SyncConfig, index *solr.Client, platform *vmp.Client,
	db *gorm.DB, fetcher images.Fetcher, archive storage.Archiver, logger *zap.Logger) *Feature {
	m := mapper.New(mapper.Options{BackfillLocale: cfg.BackfillLocale}, logger)
	svc := NewService(cfg, index, platform, NewLedger(db), m, fetcher, archive, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "occurrence"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service exposes the sync service for direct invocation by the scheduler.
func (f *Feature) Service() *Service {
	return f.service
}
