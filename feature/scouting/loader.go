package scouting

import (
	"scouting-hub/core/cache"
	"scouting-hub/feature/scouting/drivesync"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the scouting feature.
func NewFeature(o *drivesync.Orchestrator, c *cache.Cache, defaultTeam string, logger *zap.Logger) *Feature {
	svc := NewService(o, c, defaultTeam, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "scouting"
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

// Service returns the feature's service, for CLI commands.
func (f *Feature) Service() *Service {
	return f.service
}
