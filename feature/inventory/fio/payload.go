package fio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"kawa-inventory/core/utils"
)

// GroupHub is the group hub response: every CX warehouse holding goods of the
// requested players, plus one model per player with their planet sites.
type GroupHub struct {
	CXWarehouses []CXWarehouse `json:"CXWarehouses"`
	PlayerModels []PlayerModel `json:"PlayerModels"`
	Failures     []string      `json:"Failures"`
}

// Failed reports whether handle is listed under Failures, ignoring case.
func (h *GroupHub) Failed(handle string) bool {
	if h == nil {
		return false
	}
	key := utils.NormalizeKey(handle)
	for _, f := range h.Failures {
		if utils.NormalizeKey(f) == key {
			return true
		}
	}
	return false
}

// CXWarehouse is a station warehouse container shared by several players.
type CXWarehouse struct {
	WarehouseLocationName      string            `json:"WarehouseLocationName"`
	WarehouseLocationNaturalID string            `json:"WarehouseLocationNaturalId"`
	PlayerCXWarehouses         []PlayerWarehouse `json:"PlayerCXWarehouses"`
}

// PlayerWarehouse is one player's share of a station warehouse.
type PlayerWarehouse struct {
	PlayerName  string     `json:"PlayerName"`
	StorageType string     `json:"StorageType"`
	Items       []Item     `json:"Items"`
	LastUpdated *Timestamp `json:"LastUpdated"`
}

// PlayerModel is one player's view of their own sites.
type PlayerModel struct {
	UserName  string           `json:"UserName"`
	Locations []PlayerLocation `json:"Locations"`
}

// PlayerLocation is a planet where the player has a base. Either storage may be absent.
type PlayerLocation struct {
	LocationIdentifier string   `json:"LocationIdentifier"`
	LocationName       string   `json:"LocationName"`
	BaseStorage        *Storage `json:"BaseStorage"`
	WarehouseStorage   *Storage `json:"WarehouseStorage"`
}

// Storage is a single store at a planet location.
type Storage struct {
	StorageType string     `json:"StorageType"`
	Items       []Item     `json:"Items"`
	LastUpdated *Timestamp `json:"LastUpdated"`
}

// Item is one inventory slot. MaterialTicker is empty for unused slots.
type Item struct {
	MaterialTicker string `json:"MaterialTicker"`
	MaterialName   string `json:"MaterialName"`
	Units          int    `json:"Units"`
}

// Timestamp accepts RFC 3339 and the zone-less ISO-8601 form FIO emits.
// Zone-less values are taken as UTC.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if raw == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("timestamp: unrecognized format %q", raw)
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

// Ptr returns the time or nil when unset.
func (t *Timestamp) Ptr() *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}
