// Package reconcile replaces a user's stored inventory with the latest snapshot
// fetched from an external game-data source.
//
// A run is a full replacement, not a delta:
//
//  1. Fetch the snapshot through a Source. Transport errors abort the run.
//  2. Load the known locations and commodities through a ReferenceLoader.
//  3. Delete every storage (and item) the user currently has.
//  4. Walk the snapshot. Each storage is deduplicated by StorageKey, checked
//     against the user's Exclusions and the known locations, inserted, and then
//     its items are validated and inserted one by one.
//  5. Resolve the freshest source timestamp and return an Outcome.
//
// # Failure Isolation
//
// Only fetch, reference and delete failures are returned as errors. A failed
// storage insert skips that storage; a failed item insert skips that item. Both
// are recorded in Outcome.Errors and flip Outcome.Success to false while the rest
// of the payload is still processed. Unknown references, exclusions and empty
// slots are counted, never reported as errors.
//
// # Adapters
//
// The engine knows nothing about the payload format. A Source returns a Snapshot
// whose Walk method yields StorageSnapshot values in a fixed order; see
// feature/inventory/reconcile for the FIO group hub implementation.
//
// # Usage
//
//	engine := reconcile.NewEngine(source, refs, store, logger)
//	out, err := engine.Reconcile(ctx, reconcile.Request{
//	    UserID:            user.ID,
//	    Credential:        user.FioAPIKey,
//	    Handle:            user.FioUsername,
//	    ExcludedLocations: user.ExcludedLocations,
//	})
package reconcile
