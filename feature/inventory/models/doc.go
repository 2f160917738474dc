// Package models contains the GORM models backing inventory sync.
//
// Location and Commodity are reference data maintained elsewhere; the sync only
// reads them. User carries the FIO link and exclusion preferences. Storage and
// InventoryItem are owned by the sync and replaced on every run: deleting a
// Storage cascades to its items.
package models
