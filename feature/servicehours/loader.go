package servicehours

import (
	"vmp-sync/core/config"
	"vmp-sync/core/vmp"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the service-hours feature.
func NewFeature(cfg config.SyncConfig, db *gorm.DB, platform *vmp.Client, logger *zap.Logger) *Feature {
	svc := NewService(cfg, db, platform, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "servicehours"
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

// Service exposes the dispatch service for direct invocation.
func (f *Feature) Service() *Service {
	return f.service
}
