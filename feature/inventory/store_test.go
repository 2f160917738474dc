package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"kawa-inventory/core/reconcile"
	"kawa-inventory/feature/inventory"
	"kawa-inventory/feature/inventory/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func createStorage(t *testing.T, store *inventory.Store, userID uint, loc string, tickers ...string) uint {
	t.Helper()
	ctx := context.Background()
	key := reconcile.StorageKey{LocationID: loc, Kind: reconcile.KindBaseStore}
	id, err := store.CreateStorage(ctx, reconcile.StorageRecord{
		UserID:     userID,
		StorageKey: key.String(),
		LocationID: loc,
		Kind:       key.Kind,
		SyncedAt:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	for _, ticker := range tickers {
		require.NoError(t, store.CreateItem(ctx, reconcile.ItemRecord{StorageID: id, Ticker: ticker, Quantity: 3}))
	}
	return id
}

func TestStore_DeleteUserStorages(t *testing.T) {
	db := setupDB(t, "store_delete")
	store := inventory.NewStore(db)
	ctx := context.Background()

	createStorage(t, store, 1, "UV-351a", "DW", "RAT")
	createStorage(t, store, 1, "ANT", "H2O")
	otherID := createStorage(t, store, 2, "UV-351a", "DW")

	require.NoError(t, store.DeleteUserStorages(ctx, 1))

	var storages []models.Storage
	require.NoError(t, db.Find(&storages).Error)
	require.Len(t, storages, 1)
	assert.Equal(t, otherID, storages[0].ID)

	var items []models.InventoryItem
	require.NoError(t, db.Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, otherID, items[0].StorageID)

	// Nothing left to delete is not an error.
	assert.NoError(t, store.DeleteUserStorages(ctx, 1))
}

func TestStore_ListStorages(t *testing.T) {
	db := setupDB(t, "store_list")
	store := inventory.NewStore(db)

	createStorage(t, store, 1, "UV-351a", "RAT", "DW")
	createStorage(t, store, 1, "ANT", "H2O")
	createStorage(t, store, 2, "KW-688c", "DW")

	storages, err := store.ListStorages(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, storages, 2)

	assert.Equal(t, "base_store:ANT", storages[0].StorageKey)
	assert.Equal(t, "base_store:UV-351a", storages[1].StorageKey)
	require.Len(t, storages[1].Items, 2)
	assert.Equal(t, "DW", storages[1].Items[0].Ticker)
	assert.Equal(t, "RAT", storages[1].Items[1].Ticker)
	assert.Equal(t, 3, storages[1].Items[0].Quantity)
}

func TestStore_ReferenceData(t *testing.T) {
	db := setupDB(t, "store_reference")
	seedReference(t, db)
	store := inventory.NewStore(db)
	ctx := context.Background()

	locations, err := store.LoadKnownLocations(ctx)
	require.NoError(t, err)
	assert.Len(t, locations, 3)
	assert.Contains(t, locations, "UV-351a")
	assert.NotContains(t, locations, "uv-351a")

	commodities, err := store.LoadKnownCommodities(ctx)
	require.NoError(t, err)
	assert.Len(t, commodities, 3)
	assert.Contains(t, commodities, "RAT")
}

func TestStore_Users(t *testing.T) {
	db := setupDB(t, "store_users")
	store := inventory.NewStore(db)
	ctx := context.Background()

	linked := seedUser(t, db, "alice", "Alice", "key-a", "ANT")
	seedUser(t, db, "bob", "", "")
	seedUser(t, db, "carol", "Carol", "")
	second := seedUser(t, db, "dave", "Dave", "key-d")

	t.Run("FindUser", func(t *testing.T) {
		user, err := store.FindUser(ctx, linked.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alice", user.FioUsername)
		assert.Equal(t, []string{"ANT"}, user.ExcludedLocations)

		_, err = store.FindUser(ctx, 999)
		assert.ErrorIs(t, err, inventory.ErrUserNotFound)
	})

	t.Run("LinkedUsers", func(t *testing.T) {
		users, err := store.LinkedUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, linked.ID, users[0].ID)
		assert.Equal(t, second.ID, users[1].ID)
	})

	t.Run("MarkSynced", func(t *testing.T) {
		syncedAt := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
		sourceAt := time.Date(2026, 3, 2, 7, 30, 0, 0, time.UTC)
		require.NoError(t, store.MarkSynced(ctx, linked.ID, syncedAt, &sourceAt))

		user, err := store.FindUser(ctx, linked.ID)
		require.NoError(t, err)
		require.NotNil(t, user.InventorySyncedAt)
		require.NotNil(t, user.InventorySourceAt)
		assert.True(t, syncedAt.Equal(*user.InventorySyncedAt))
		assert.True(t, sourceAt.Equal(*user.InventorySourceAt))

		require.NoError(t, store.MarkSynced(ctx, linked.ID, syncedAt, nil))
		user, err = store.FindUser(ctx, linked.ID)
		require.NoError(t, err)
		assert.Nil(t, user.InventorySourceAt)
	})
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestStore_FailurePaths(t *testing.T) {
	ctx := context.Background()

	t.Run("Delete Rolls Back", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM `inventory_items`").WillReturnError(errors.New("lock wait timeout"))
		mock.ExpectRollback()

		err := inventory.NewStore(db).DeleteUserStorages(ctx, 1)
		assert.ErrorContains(t, err, "delete items")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Delete Storages Fails", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM `inventory_items`").WillReturnResult(sqlmock.NewResult(0, 4))
		mock.ExpectExec("DELETE FROM `storages`").WillReturnError(errors.New("deadlock"))
		mock.ExpectRollback()

		err := inventory.NewStore(db).DeleteUserStorages(ctx, 1)
		assert.ErrorContains(t, err, "delete storages")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Create Storage Fails", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `storages`").WillReturnError(errors.New("duplicate entry"))
		mock.ExpectRollback()

		id, err := inventory.NewStore(db).CreateStorage(ctx, reconcile.StorageRecord{UserID: 1, StorageKey: "base_store:ANT"})
		assert.Error(t, err)
		assert.Zero(t, id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Reference Query Fails", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery("SELECT `natural_id` FROM `locations`").WillReturnError(errors.New("gone away"))

		_, err := inventory.NewStore(db).LoadKnownLocations(ctx)
		assert.ErrorContains(t, err, "gone away")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
