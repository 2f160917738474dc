package reconcile

import "context"

// Snapshot is a parsed payload from the external source.
type Snapshot interface {
	// Walk calls visit for every storage belonging to handle, in a
	// deterministic order. A storage may be visited more than once when the
	// payload describes it in several places.
	Walk(handle string, visit func(StorageSnapshot))
}

// Source fetches a player's snapshot from the external API.
type Source interface {
	// Fetch returns the parsed payload or a transport error. It never returns
	// a partial payload without an error.
	Fetch(ctx context.Context, credential, handle string) (Snapshot, error)
}

// ReferenceLoader reads the ids the platform already recognizes.
type ReferenceLoader interface {
	// LoadKnownLocations returns the set of known location natural ids.
	LoadKnownLocations(ctx context.Context) (map[string]struct{}, error)
	// LoadKnownCommodities returns the set of known commodity tickers.
	LoadKnownCommodities(ctx context.Context) (map[string]struct{}, error)
}

// Store persists storages and items.
type Store interface {
	// DeleteUserStorages removes every storage of the user and their items.
	DeleteUserStorages(ctx context.Context, userID uint) error
	// CreateStorage inserts a storage row and returns its generated id.
	CreateStorage(ctx context.Context, rec StorageRecord) (uint, error)
	// CreateItem inserts one item into an existing storage.
	CreateItem(ctx context.Context, rec ItemRecord) error
}
