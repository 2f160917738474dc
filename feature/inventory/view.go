package inventory

import (
	"time"

	"kawa-inventory/feature/inventory/models"
)

// InventoryView is the stored inventory of one user.
type InventoryView struct {
	UserID   uint          `json:"userId"`
	Handle   string        `json:"handle"`
	SyncedAt *time.Time    `json:"syncedAt"`
	SourceAt *time.Time    `json:"sourceAt"`
	Storages []StorageView `json:"storages"`
}

// StorageView is one storage with its items.
type StorageView struct {
	StorageKey      string     `json:"storageKey"`
	LocationID      string     `json:"locationId"`
	Kind            string     `json:"kind"`
	SourceUpdatedAt *time.Time `json:"sourceUpdatedAt"`
	SyncedAt        time.Time  `json:"syncedAt"`
	Items           []ItemView `json:"items"`
}

// ItemView is one inventory item.
type ItemView struct {
	Ticker   string `json:"ticker"`
	Quantity int    `json:"quantity"`
}

func newInventoryView(user *models.User, storages []models.Storage) *InventoryView {
	view := &InventoryView{
		UserID:   user.ID,
		Handle:   user.FioUsername,
		SyncedAt: user.InventorySyncedAt,
		SourceAt: user.InventorySourceAt,
		Storages: make([]StorageView, 0, len(storages)),
	}
	for _, st := range storages {
		sv := StorageView{
			StorageKey:      st.StorageKey,
			LocationID:      st.LocationID,
			Kind:            st.Kind,
			SourceUpdatedAt: st.SourceUpdatedAt,
			SyncedAt:        st.SyncedAt,
			Items:           make([]ItemView, 0, len(st.Items)),
		}
		for _, item := range st.Items {
			sv.Items = append(sv.Items, ItemView{Ticker: item.Ticker, Quantity: item.Quantity})
		}
		view.Storages = append(view.Storages, sv)
	}
	return view
}
