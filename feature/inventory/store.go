package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kawa-inventory/core/reconcile"
	"kawa-inventory/core/utils"
	"kawa-inventory/feature/inventory/models"

	"gorm.io/gorm"
)

// Store persists inventory and reads reference data through gorm.
// It implements reconcile.Store and reconcile.ReferenceLoader.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new gorm-backed store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DeleteUserStorages removes every storage of the user together with its items.
func (s *Store) DeleteUserStorages(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&models.Storage{}).Select("id").Where("user_id = ?", userID)
		if err := tx.Where("storage_id IN (?)", owned).Delete(&models.InventoryItem{}).Error; err != nil {
			return fmt.Errorf("delete items: %w", err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Storage{}).Error; err != nil {
			return fmt.Errorf("delete storages: %w", err)
		}
		return nil
	})
}

// CreateStorage inserts a storage row and returns its id.
func (s *Store) CreateStorage(ctx context.Context, rec reconcile.StorageRecord) (uint, error) {
	row := models.Storage{
		UserID:          rec.UserID,
		StorageKey:      rec.StorageKey,
		LocationID:      rec.LocationID,
		Kind:            string(rec.Kind),
		SourceUpdatedAt: rec.SourceUpdatedAt,
		SyncedAt:        rec.SyncedAt,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, err
	}
	return row.ID, nil
}

// CreateItem inserts one inventory item.
func (s *Store) CreateItem(ctx context.Context, rec reconcile.ItemRecord) error {
	row := models.InventoryItem{
		StorageID: rec.StorageID,
		Ticker:    rec.Ticker,
		Quantity:  rec.Quantity,
	}
	return s.db.WithContext(ctx).Create(&row).Error
}

// LoadKnownLocations returns every location natural id.
func (s *Store) LoadKnownLocations(ctx context.Context) (map[string]struct{}, error) {
	return s.pluckSet(ctx, &models.Location{}, "natural_id")
}

// LoadKnownCommodities returns every commodity ticker.
func (s *Store) LoadKnownCommodities(ctx context.Context) (map[string]struct{}, error) {
	return s.pluckSet(ctx, &models.Commodity{}, "ticker")
}

func (s *Store) pluckSet(ctx context.Context, model any, column string) (map[string]struct{}, error) {
	var values []string
	if err := s.db.WithContext(ctx).Model(model).Pluck(column, &values).Error; err != nil {
		return nil, err
	}
	return utils.StringSet(values), nil
}

// FindUser loads a user by id.
func (s *Store) FindUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// LinkedUsers returns every user with FIO credentials, ordered by id.
func (s *Store) LinkedUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Where("fio_username <> '' AND fio_api_key <> ''").
		Order("id").
		Find(&users).Error
	return users, err
}

// MarkSynced stamps the user with the time of a finished run.
func (s *Store) MarkSynced(ctx context.Context, userID uint, syncedAt time.Time, sourceAt *time.Time) error {
	return s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"inventory_synced_at": syncedAt,
			"inventory_source_at": sourceAt,
		}).Error
}

// ListStorages returns the user's storages with their items.
func (s *Store) ListStorages(ctx context.Context, userID uint) ([]models.Storage, error) {
	var storages []models.Storage
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("ticker") }).
		Where("user_id = ?", userID).
		Order("storage_key").
		Find(&storages).Error
	return storages, err
}
