// Package integrity provides health checks for the inventory service.
//
// # Checks Provided
//
//   - Schema: Validates that the connected database has every column the inventory models declare (types too, on mysql).
//   - Reference: Counts known locations and commodities. Empty tables make every synced storage count as unknown.
//   - Archive: Checks that the snapshot archive bucket exists, when archiving is enabled.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/schema : Runs schema check.
//   - GET /integrity/reference : Runs reference data check.
//   - GET /integrity/archive : Runs archive check (supports ?fix=true).
package integrity
