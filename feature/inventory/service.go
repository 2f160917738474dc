package inventory

import (
	"context"
	"errors"
	"strconv"
	"time"

	"kawa-inventory/core/lock"
	"kawa-inventory/core/logger"
	"kawa-inventory/core/metrics"
	"kawa-inventory/core/reconcile"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Service runs inventory syncs for platform users.
type Service struct {
	store    *Store
	source   reconcile.Source
	locker   lock.Locker
	archiver *Archiver
	metrics  *metrics.SyncMetrics
	logger   *zap.Logger
	group    singleflight.Group
	now      func() time.Time
}

// NewService creates a new inventory service. archiver and m may be nil.
func NewService(store *Store, source reconcile.Source, locker lock.Locker, archiver *Archiver, m *metrics.SyncMetrics, logger *zap.Logger) *Service {
	if locker == nil {
		locker = lock.NewLocalLocker()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		source:   source,
		locker:   locker,
		archiver: archiver,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

// UserOutcome is the result of one user's run within a batch.
type UserOutcome struct {
	UserID  uint               `json:"userId"`
	Handle  string             `json:"handle"`
	Outcome *reconcile.Outcome `json:"outcome,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// SyncUser replaces the user's stored inventory with the current FIO snapshot.
// Concurrent calls for the same user share one run. The shared run is not
// bound to any caller's cancellation; each caller stops waiting when its own
// ctx is done.
func (s *Service) SyncUser(ctx context.Context, userID uint) (*reconcile.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := strconv.FormatUint(uint64(userID), 10)
	runCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (any, error) {
		return s.syncUser(runCtx, userID)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		out, _ := res.Val.(*reconcile.Outcome)
		return out, res.Err
	}
}

func (s *Service) syncUser(ctx context.Context, userID uint) (*reconcile.Outcome, error) {
	user, err := s.store.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsLinked() {
		return nil, ErrNotLinked
	}

	l := logger.WithUser(s.logger, user.ID, user.FioUsername)

	release, err := s.locker.Acquire(ctx, "user:"+strconv.FormatUint(uint64(user.ID), 10))
	if err != nil {
		if errors.Is(err, lock.ErrRunInProgress) {
			s.metrics.IncBusy()
		}
		return nil, err
	}
	defer func() {
		if err := release(context.Background()); err != nil {
			l.Warn("Failed to release sync lock", zap.Error(err))
		}
	}()

	start := s.now()
	engine := reconcile.NewEngine(s.archiver.Wrap(s.source, user.ID), s.store, s.store, l).WithClock(s.now)
	out, runErr := engine.Reconcile(ctx, reconcile.Request{
		UserID:            user.ID,
		Credential:        user.FioAPIKey,
		Handle:            user.FioUsername,
		ExcludedLocations: user.ExcludedLocations,
	})
	elapsed := s.now().Sub(start)

	s.metrics.Observe(metrics.Run{
		Result:             resultLabel(out, runErr),
		Inserted:           out.Inserted,
		Storages:           out.StorageLocations,
		SkippedExcluded:    out.SkippedExcludedLocations,
		SkippedLocations:   out.SkippedUnknownLocations,
		SkippedCommodities: out.SkippedUnknownCommodities,
		Duration:           elapsed,
	})

	fields := []zap.Field{
		zap.Bool("success", out.Success),
		zap.Int("inserted", out.Inserted),
		zap.Int("storage_locations", out.StorageLocations),
		zap.Int("skipped_excluded_locations", out.SkippedExcludedLocations),
		zap.Int("skipped_unknown_locations", out.SkippedUnknownLocations),
		zap.Int("skipped_unknown_commodities", out.SkippedUnknownCommodities),
		zap.Int("errors", len(out.Errors)),
		zap.Duration("duration", elapsed),
	}
	if runErr != nil {
		l.Error("Inventory sync failed", append(fields, zap.Error(runErr))...)
		return out, runErr
	}

	if err := s.store.MarkSynced(ctx, user.ID, s.now(), out.LastSourceTimestamp); err != nil {
		l.Warn("Failed to stamp user sync time", zap.Error(err))
	}
	l.Info("Inventory sync finished", fields...)
	return out, nil
}

func resultLabel(out *reconcile.Outcome, err error) string {
	switch {
	case err != nil:
		return metrics.ResultFailed
	case out.Success:
		return metrics.ResultSuccess
	default:
		return metrics.ResultPartial
	}
}

// SyncAll syncs every linked user in id order. Per-user failures are
// reported in the result; only listing users can fail the batch.
func (s *Service) SyncAll(ctx context.Context) ([]UserOutcome, error) {
	users, err := s.store.LinkedUsers(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]UserOutcome, 0, len(users))
	for _, user := range users {
		if ctx.Err() != nil {
			return results, ctx.Err()
		}
		out, err := s.SyncUser(ctx, user.ID)
		res := UserOutcome{UserID: user.ID, Handle: user.FioUsername, Outcome: out}
		if err != nil {
			res.Error = err.Error()
		}
		results = append(results, res)
	}
	return results, nil
}

// Inventory returns the user's stored storages and items.
func (s *Service) Inventory(ctx context.Context, userID uint) (*InventoryView, error) {
	user, err := s.store.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	storages, err := s.store.ListStorages(ctx, userID)
	if err != nil {
		return nil, err
	}
	return newInventoryView(user, storages), nil
}
