package columns

import (
	"column-sync/core/reconcile"
	"column-sync/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new columns feature. A nil db disables it.
func NewFeature(db *gorm.DB, client storage.Client, bucket string, cfg reconcile.Config, logger *zap.Logger) *Feature {
	if db == nil {
		return &Feature{}
	}
	svc := NewService(db, client, bucket, cfg, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "columns"
}

// IsEnabled reports whether a database is available.
func (f *Feature) IsEnabled() bool {
	return f.service != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
