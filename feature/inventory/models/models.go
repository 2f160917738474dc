package models

import "time"

// Location is a place the platform recognizes (planet or station).
type Location struct {
	ID uint `gorm:"primaryKey"`
	// NaturalID is the id issued by the game, e.g. "UV-351a" or "ANT". Case-sensitive.
	NaturalID string `gorm:"column:natural_id;type:varchar(32);uniqueIndex;not null"`
	Name      string `gorm:"column:name;type:varchar(128)"`
	// Kind is "planet" or "station".
	Kind string `gorm:"column:kind;type:varchar(16)"`
}

// TableName overrides the table name.
func (Location) TableName() string {
	return "locations"
}

// Commodity is a tradable material type.
type Commodity struct {
	ID       uint   `gorm:"primaryKey"`
	Ticker   string `gorm:"column:ticker;type:varchar(16);uniqueIndex;not null"`
	Name     string `gorm:"column:name;type:varchar(128)"`
	Category string `gorm:"column:category;type:varchar(64)"`
}

// TableName overrides the table name.
func (Commodity) TableName() string {
	return "commodities"
}

// User is a community member whose game inventory is synced.
type User struct {
	ID       uint   `gorm:"primaryKey"`
	Username string `gorm:"column:username;type:varchar(64);uniqueIndex;not null"`
	// FioUsername is the in-game handle. Empty means the account is not linked.
	FioUsername string `gorm:"column:fio_username;type:varchar(64)"`
	FioAPIKey   string `gorm:"column:fio_api_key;type:varchar(128)"`
	// ExcludedLocations holds location ids or names the user does not want synced.
	ExcludedLocations []string `gorm:"column:excluded_locations;serializer:json"`
	// InventorySyncedAt is when the last non-fatal sync finished.
	InventorySyncedAt *time.Time `gorm:"column:inventory_synced_at"`
	// InventorySourceAt is the freshest in-game timestamp seen by that sync.
	InventorySourceAt *time.Time `gorm:"column:inventory_source_at"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName overrides the table name.
func (User) TableName() string {
	return "users"
}

// IsLinked reports whether the user has FIO credentials configured.
func (u User) IsLinked() bool {
	return u.FioUsername != "" && u.FioAPIKey != ""
}

// Storage is one inventory container of one user at one location.
// Rows are replaced wholesale on every sync.
type Storage struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"column:user_id;not null;uniqueIndex:idx_storages_user_key"`
	// StorageKey is derived from location and kind, e.g. "base_store:UV-351a".
	StorageKey      string          `gorm:"column:storage_key;type:varchar(64);not null;uniqueIndex:idx_storages_user_key"`
	LocationID      string          `gorm:"column:location_id;type:varchar(32);not null;index"`
	Kind            string          `gorm:"column:kind;type:varchar(16);not null"`
	SourceUpdatedAt *time.Time      `gorm:"column:source_updated_at"`
	SyncedAt        time.Time       `gorm:"column:synced_at;not null"`
	Items           []InventoryItem `gorm:"foreignKey:StorageID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name.
func (Storage) TableName() string {
	return "storages"
}

// InventoryItem is a quantity of one commodity inside one storage.
type InventoryItem struct {
	ID        uint   `gorm:"primaryKey"`
	StorageID uint   `gorm:"column:storage_id;not null;index"`
	Ticker    string `gorm:"column:ticker;type:varchar(16);not null"`
	Quantity  int    `gorm:"column:quantity;not null"`
}

// TableName overrides the table name.
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// All returns every model, in dependency order, for AutoMigrate.
func All() []any {
	return []any{&Location{}, &Commodity{}, &User{}, &Storage{}, &InventoryItem{}}
}
