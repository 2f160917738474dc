// Package inventory syncs platform users' in-game inventory from FIO.
//
// A sync resolves the user's FIO handle, API key and excluded locations,
// takes the per-user run lock and hands off to the core reconcile engine with
// a gorm Store. Concurrent triggers for the same user in one process are
// coalesced into a single run; across processes the lock rejects overlaps
// with lock.ErrRunInProgress.
//
// # Archive
//
// When enabled, every fetched payload is written to object storage under
// <prefix>/<userID>/<unix>.json and older payloads beyond the retention
// count are removed. Archive failures are logged and never fail a run.
//
// # HTTP
//
//	POST /inventory/:userId/sync   run a sync, returns the outcome
//	GET  /inventory/:userId        stored storages and items
package inventory
