package reconcile

import (
	"context"
	"fmt"

	"kawa-inventory/core/reconcile"
	"kawa-inventory/core/utils"
	"kawa-inventory/feature/inventory/fio"
)

// GroupHubClient fetches the FIO group hub payload.
type GroupHubClient interface {
	GroupHub(ctx context.Context, apiKey string, handles ...string) (*fio.GroupHub, error)
}

// Source adapts the FIO group hub to reconcile.Source.
type Source struct {
	client GroupHubClient
}

// NewSource creates a Source backed by the given client.
func NewSource(client GroupHubClient) *Source {
	return &Source{client: client}
}

// Fetch implements reconcile.Source. A handle rejected by the group hub is
// a fetch error, not an empty snapshot.
func (s *Source) Fetch(ctx context.Context, credential, handle string) (reconcile.Snapshot, error) {
	hub, err := s.client.GroupHub(ctx, credential, handle)
	if err != nil {
		return nil, err
	}
	if hub.Failed(handle) {
		return nil, fmt.Errorf("%w: %s", fio.ErrHandleFailed, handle)
	}
	return NewSnapshot(hub), nil
}

type cxEntry struct {
	warehouse *fio.CXWarehouse
	player    *fio.PlayerWarehouse
}

// Snapshot is a group hub payload indexed by lowercased player handle.
type Snapshot struct {
	hub     *fio.GroupHub
	players map[string]*fio.PlayerModel
	cx      map[string][]cxEntry
}

// NewSnapshot indexes both halves of the payload once. The payload's handle
// casing is not guaranteed to match the request, so keys are lowercased.
func NewSnapshot(hub *fio.GroupHub) *Snapshot {
	s := &Snapshot{
		hub:     hub,
		players: make(map[string]*fio.PlayerModel),
		cx:      make(map[string][]cxEntry),
	}
	if hub == nil {
		return s
	}

	for i := range hub.PlayerModels {
		model := &hub.PlayerModels[i]
		key := utils.NormalizeKey(model.UserName)
		if _, exists := s.players[key]; !exists {
			s.players[key] = model
		}
	}

	for i := range hub.CXWarehouses {
		wh := &hub.CXWarehouses[i]
		for j := range wh.PlayerCXWarehouses {
			entry := &wh.PlayerCXWarehouses[j]
			key := utils.NormalizeKey(entry.PlayerName)
			s.cx[key] = append(s.cx[key], cxEntry{warehouse: wh, player: entry})
		}
	}
	return s
}

// Payload returns the raw group hub response for archiving.
func (s *Snapshot) Payload() any {
	return s.hub
}

// Walk implements reconcile.Snapshot. Planet sites come first (base store,
// then warehouse store per site), then station warehouses in payload order.
func (s *Snapshot) Walk(handle string, visit func(reconcile.StorageSnapshot)) {
	key := utils.NormalizeKey(handle)

	if model, ok := s.players[key]; ok {
		for _, loc := range model.Locations {
			if loc.BaseStorage != nil {
				visit(fromStorage(loc, reconcile.KindBaseStore, loc.BaseStorage))
			}
			if loc.WarehouseStorage != nil {
				visit(fromStorage(loc, reconcile.KindWarehouseStore, loc.WarehouseStorage))
			}
		}
	}

	for _, entry := range s.cx[key] {
		visit(reconcile.StorageSnapshot{
			LocationID:   entry.warehouse.WarehouseLocationNaturalID,
			LocationName: entry.warehouse.WarehouseLocationName,
			Kind:         reconcile.KindWarehouseStore,
			Items:        toRawItems(entry.player.Items),
			UpdatedAt:    entry.player.LastUpdated.Ptr(),
		})
	}
}

func fromStorage(loc fio.PlayerLocation, kind reconcile.StorageKind, store *fio.Storage) reconcile.StorageSnapshot {
	return reconcile.StorageSnapshot{
		LocationID:   loc.LocationIdentifier,
		LocationName: loc.LocationName,
		Kind:         kind,
		Items:        toRawItems(store.Items),
		UpdatedAt:    store.LastUpdated.Ptr(),
	}
}

func toRawItems(items []fio.Item) []reconcile.RawItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]reconcile.RawItem, len(items))
	for i, item := range items {
		out[i] = reconcile.RawItem{Ticker: item.MaterialTicker, Quantity: item.Units}
	}
	return out
}
