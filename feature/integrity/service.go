package integrity

import (
	"context"

	"kawa-inventory/core/storage"
	"kawa-inventory/feature/integrity/checks"
	"kawa-inventory/feature/inventory/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client  storage.Client
	bucket  string
	region  string
	prefix  string
	logger  *zap.Logger
	db      *gorm.DB
	enabled bool
}

// NewService creates a new integrity service. archive reports whether
// snapshot archiving is configured; the archive check is skipped otherwise.
func NewService(client storage.Client, cfg storage.Config, prefix string, archive bool, logger *zap.Logger, db *gorm.DB) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:  client,
		bucket:  cfg.Bucket,
		region:  cfg.Region,
		prefix:  prefix,
		logger:  logger,
		db:      db,
		enabled: archive && client != nil,
	}
}

// CheckSchema compares the inventory tables against the models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, models.All()...)
}

// CheckReference counts the reference data a sync depends on.
func (s *Service) CheckReference(ctx context.Context) (*checks.ReferenceReport, error) {
	return checks.CheckReferenceData(ctx, s.db)
}

// ArchiveEnabled reports whether the archive check applies.
func (s *Service) ArchiveEnabled() bool {
	return s.enabled
}

// CheckArchive inspects the snapshot archive bucket.
func (s *Service) CheckArchive(ctx context.Context) (*checks.ArchiveReport, error) {
	return checks.CheckArchive(ctx, s.client, s.bucket, s.prefix)
}

// FixArchive creates the snapshot archive bucket.
func (s *Service) FixArchive(ctx context.Context) error {
	s.logger.Info("Creating archive bucket", zap.String("bucket", s.bucket))
	return checks.FixArchive(ctx, s.client, s.bucket, s.region)
}
