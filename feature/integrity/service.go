package integrity

import (
	"context"

	"arcade-catalog/core/storage"
	"arcade-catalog/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service runs integrity checks against the catalog database and bucket.
type Service struct {
	db     *gorm.DB
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewService creates a new integrity service. db and client may be nil when the matching
// checks are not used.
func NewService(db *gorm.DB, client storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{
		db:     db,
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// CheckSchema compares the catalog tables with the row models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db)
}

// CheckOrphans counts unreferenced records.
func (s *Service) CheckOrphans() (*checks.OrphanReport, error) {
	return checks.CheckOrphans(s.db)
}

// CheckLayout returns the prefixes missing from the bucket.
func (s *Service) CheckLayout(ctx context.Context, prefixes []string) ([]string, error) {
	return checks.CheckLayout(ctx, s.client, s.bucket, prefixes)
}

// FixLayout creates the missing prefixes.
func (s *Service) FixLayout(ctx context.Context, missing []string) error {
	return checks.FixLayout(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckUpload returns the files missing from an uploaded export.
func (s *Service) CheckUpload(ctx context.Context, prefix string) ([]string, error) {
	return checks.CheckUpload(ctx, s.client, s.bucket, prefix)
}
