package reconcile

import "time"

// StorageKind identifies the type of inventory container.
type StorageKind string

const (
	// KindBaseStore is the store attached to a player's base on a planet.
	KindBaseStore StorageKind = "base_store"
	// KindWarehouseStore is a rented warehouse, on a planet or at a station.
	KindWarehouseStore StorageKind = "warehouse_store"
)

// StorageKey identifies one storage of one user within a run.
// It is comparable and used directly as a map key.
type StorageKey struct {
	LocationID string
	Kind       StorageKind
}

// String returns the synthetic key persisted on the storage row.
func (k StorageKey) String() string {
	return string(k.Kind) + ":" + k.LocationID
}

// RawItem is a single inventory slot as reported by the source.
type RawItem struct {
	Ticker   string
	Quantity int
}

// Valid reports whether the slot holds something. Empty tickers and
// non-positive quantities are empty slots, not validation failures.
func (i RawItem) Valid() bool {
	return i.Ticker != "" && i.Quantity > 0
}

// StorageSnapshot is one storage found while walking the source payload.
type StorageSnapshot struct {
	LocationID   string
	LocationName string
	Kind         StorageKind
	Items        []RawItem
	// UpdatedAt is when the source last saw this storage. Nil if unknown.
	UpdatedAt *time.Time
}

// Key returns the dedup key of the snapshot.
func (s StorageSnapshot) Key() StorageKey {
	return StorageKey{LocationID: s.LocationID, Kind: s.Kind}
}

// ValidItemCount counts the slots that would be considered for insertion.
func (s StorageSnapshot) ValidItemCount() int {
	n := 0
	for _, item := range s.Items {
		if item.Valid() {
			n++
		}
	}
	return n
}

// StorageRecord is the row written for one storage.
type StorageRecord struct {
	UserID          uint
	StorageKey      string
	LocationID      string
	Kind            StorageKind
	SourceUpdatedAt *time.Time
	SyncedAt        time.Time
}

// ItemRecord is the row written for one inventory item.
type ItemRecord struct {
	StorageID uint
	Ticker    string
	Quantity  int
}

// Request holds the inputs of a single reconciliation run.
type Request struct {
	// UserID is the internal owner of the storages being replaced.
	UserID uint
	// Credential authenticates against the external API.
	Credential string
	// Handle is the player's in-game name. Matched case-insensitively.
	Handle string
	// ExcludedLocations are location ids or names to skip.
	ExcludedLocations []string
}
