package integrity

import (
	"context"
	"fmt"

	"column-sync/core/storage"
	"column-sync/feature/columns/store"
	"column-sync/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks of the column store and the bucket.
type Service struct {
	client  storage.Client
	bucket  string
	folders []string
	db      *gorm.DB
	logger  *zap.Logger
}

// NewService creates a new integrity service. Either db or client may be
// nil; the matching checks then report an error.
func NewService(client storage.Client, bucket, archivePrefix string, db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		client:  client,
		bucket:  bucket,
		folders: checks.RequiredFolders(archivePrefix),
		db:      db,
		logger:  logger,
	}
}

// CheckStructure reports the missing bucket folders.
func (s *Service) CheckStructure(ctx context.Context) (*checks.StructureReport, error) {
	if s.client == nil {
		return nil, fmt.Errorf("object storage is not configured")
	}
	return checks.CheckStructure(ctx, s.client, s.bucket, s.folders)
}

// FixStructure creates what the report lists as missing.
func (s *Service) FixStructure(ctx context.Context, report *checks.StructureReport) error {
	if s.client == nil {
		return fmt.Errorf("object storage is not configured")
	}
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, report)
}

// CheckSchema compares the column store tables with the models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db)
}

// FixSchema migrates the column store tables.
func (s *Service) FixSchema(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	return store.New(s.db).Migrate(ctx)
}
