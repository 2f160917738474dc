package reconcile

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Reference is the set of known locations and commodities for one run.
type Reference struct {
	Locations   map[string]struct{}
	Commodities map[string]struct{}
	Loaded      time.Time
}

// HasLocation reports whether the location natural id is known.
func (r *Reference) HasLocation(id string) bool {
	_, ok := r.Locations[id]
	return ok
}

// HasCommodity reports whether the ticker is known.
func (r *Reference) HasCommodity(ticker string) bool {
	_, ok := r.Commodities[ticker]
	return ok
}

// LoadReference loads both reference sets concurrently. Any failure is
// returned; callers must not continue with an empty set.
func LoadReference(ctx context.Context, loader ReferenceLoader) (*Reference, error) {
	var (
		locations   map[string]struct{}
		commodities map[string]struct{}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		locations, err = loader.LoadKnownLocations(gctx)
		if err != nil {
			return fmt.Errorf("load known locations: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		commodities, err = loader.LoadKnownCommodities(gctx)
		if err != nil {
			return fmt.Errorf("load known commodities: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if locations == nil {
		locations = map[string]struct{}{}
	}
	if commodities == nil {
		commodities = map[string]struct{}{}
	}

	return &Reference{
		Locations:   locations,
		Commodities: commodities,
		Loaded:      time.Now(),
	}, nil
}
