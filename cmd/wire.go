package cmd

import (
	"context"
	"fmt"

	"kawa-inventory/core/config"
	"kawa-inventory/core/lock"
	"kawa-inventory/core/metrics"
	"kawa-inventory/core/storage"
	"kawa-inventory/feature/inventory"
	"kawa-inventory/feature/inventory/fio"
	fiosource "kawa-inventory/feature/inventory/reconcile"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// newInventoryService wires the sync service shared by the server and the CLI.
// client may be nil when archiving is disabled.
func newInventoryService(ctx context.Context, cfg *config.Config, db *gorm.DB, client storage.Client, m *metrics.SyncMetrics, logg *zap.Logger) (*inventory.Service, error) {
	locker, err := lock.New(ctx, cfg.Redis, cfg.Sync.LockTTL())
	if err != nil {
		return nil, fmt.Errorf("failed to create run lock: %w", err)
	}
	if cfg.Redis.Enabled() {
		logg.Info("Using redis run lock", zap.String("addr", cfg.Redis.Addr))
	}

	var archiver *inventory.Archiver
	if cfg.Sync.ArchiveSnapshots && client != nil {
		if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			logg.Warn("Snapshot archive bucket unavailable", zap.Error(err))
		}
		archiver = inventory.NewArchiver(client, cfg.Storage.Bucket, cfg.Sync.ArchivePrefix, cfg.Sync.ArchiveKeep, logg)
	}

	source := fiosource.NewSource(fio.NewClient(cfg.Fio))
	return inventory.NewService(inventory.NewStore(db), source, locker, archiver, m, logg), nil
}

// newArchiveClient creates the storage client when archiving is enabled.
func newArchiveClient(cfg *config.Config) (storage.Client, error) {
	if !cfg.Sync.ArchiveSnapshots {
		return nil, nil
	}
	return storage.NewClient(cfg.Storage)
}
