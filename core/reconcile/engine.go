package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrFetch wraps transport failures from the Source.
	ErrFetch = errors.New("fetch snapshot")
	// ErrReference wraps failures loading known locations or commodities.
	ErrReference = errors.New("load reference data")
	// ErrReplace wraps failures deleting the user's previous storages.
	ErrReplace = errors.New("replace storages")
)

// Engine replaces a user's stored inventory with the latest source snapshot.
// It holds no state between runs. Two runs for the same user must not overlap;
// serializing them is the caller's job.
type Engine struct {
	source Source
	refs   ReferenceLoader
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewEngine creates an engine. A nil logger disables logging.
func NewEngine(source Source, refs ReferenceLoader, store Store, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		source: source,
		refs:   refs,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the time source used for SyncedAt.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Reconcile runs a full replace of the user's storages and items.
//
// Fetch, reference and delete failures abort the run: the returned Outcome is
// failed with a single error entry and the error is also returned. Insert
// failures are recorded on the Outcome and the run continues; the returned
// error is nil in that case even though Success is false.
func (e *Engine) Reconcile(ctx context.Context, req Request) (*Outcome, error) {
	snapshot, err := e.source.Fetch(ctx, req.Credential, req.Handle)
	if err != nil {
		err = fmt.Errorf("%w for %s: %w", ErrFetch, req.Handle, err)
		return failedOutcome(err), err
	}

	ref, err := LoadReference(ctx, e.refs)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrReference, err)
		return failedOutcome(err), err
	}

	// Runs unconditionally so an emptied inventory ends up with zero rows.
	if err := e.store.DeleteUserStorages(ctx, req.UserID); err != nil {
		err = fmt.Errorf("%w for user %d: %w", ErrReplace, req.UserID, err)
		return failedOutcome(err), err
	}

	r := &run{
		engine:     e,
		req:        req,
		ref:        ref,
		exclusions: NewExclusions(req.ExcludedLocations),
		processed:  make(map[StorageKey]struct{}),
		syncedAt:   e.now().UTC(),
		out:        newOutcome(),
	}
	snapshot.Walk(req.Handle, func(s StorageSnapshot) {
		r.handle(ctx, s)
	})

	r.out.finish(r.freshness.Resolve())
	return r.out, nil
}

// run is the state of a single Reconcile call.
type run struct {
	engine     *Engine
	req        Request
	ref        *Reference
	exclusions Exclusions
	processed  map[StorageKey]struct{}
	freshness  Freshness
	syncedAt   time.Time
	out        *Outcome
}

func (r *run) handle(ctx context.Context, s StorageSnapshot) {
	if len(s.Items) == 0 {
		return
	}

	key := s.Key()
	if _, seen := r.processed[key]; seen {
		return
	}
	r.processed[key] = struct{}{}

	if r.exclusions.IsExcluded(s.LocationID, s.LocationName) {
		r.out.SkippedExcludedLocations += s.ValidItemCount()
		return
	}

	if !r.ref.HasLocation(s.LocationID) {
		r.out.SkippedUnknownLocations += s.ValidItemCount()
		return
	}

	r.freshness.Observe(s.UpdatedAt)

	storageID, err := r.engine.store.CreateStorage(ctx, StorageRecord{
		UserID:          r.req.UserID,
		StorageKey:      key.String(),
		LocationID:      s.LocationID,
		Kind:            s.Kind,
		SourceUpdatedAt: s.UpdatedAt,
		SyncedAt:        r.syncedAt,
	})
	if err != nil {
		r.out.addError("failed to create %s storage at %s: %v", s.Kind, s.LocationID, err)
		r.engine.logger.Warn("Storage insert failed",
			zap.Uint("user_id", r.req.UserID),
			zap.String("storage", key.String()),
			zap.Error(err),
		)
		return
	}
	r.out.StorageLocations++

	for _, item := range s.Items {
		if !item.Valid() {
			continue
		}
		if !r.ref.HasCommodity(item.Ticker) {
			r.out.SkippedUnknownCommodities++
			continue
		}
		err := r.engine.store.CreateItem(ctx, ItemRecord{
			StorageID: storageID,
			Ticker:    item.Ticker,
			Quantity:  item.Quantity,
		})
		if err != nil {
			r.out.addError("failed to insert %d %s into %s: %v", item.Quantity, item.Ticker, key.String(), err)
			r.engine.logger.Warn("Item insert failed",
				zap.Uint("user_id", r.req.UserID),
				zap.String("storage", key.String()),
				zap.String("ticker", item.Ticker),
				zap.Error(err),
			)
			continue
		}
		r.out.Inserted++
	}
}
