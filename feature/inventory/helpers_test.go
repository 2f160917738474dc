package inventory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"kawa-inventory/core/database"
	"kawa-inventory/feature/inventory/fio"
	"kawa-inventory/feature/inventory/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{
		Driver: database.DriverSQLite,
		Name:   fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedReference(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&[]models.Location{
		{NaturalID: "UV-351a", Name: "Katoa", Kind: "planet"},
		{NaturalID: "KW-688c", Name: "Etherwind", Kind: "planet"},
		{NaturalID: "ANT", Name: "Antares Station", Kind: "station"},
	}).Error)
	require.NoError(t, db.Create(&[]models.Commodity{
		{Ticker: "DW", Name: "Drinking Water"},
		{Ticker: "RAT", Name: "Basic Rations"},
		{Ticker: "H2O", Name: "Water"},
	}).Error)
}

func seedUser(t *testing.T, db *gorm.DB, username, handle, key string, excluded ...string) models.User {
	t.Helper()
	user := models.User{Username: username, FioUsername: handle, FioAPIKey: key, ExcludedLocations: excluded}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func ts(hour int) *fio.Timestamp {
	return &fio.Timestamp{Time: time.Date(2026, 3, 1, hour, 0, 0, 0, time.UTC)}
}

// groupHub returns a payload for handle with a planet base, a planet
// warehouse, an unknown location and a station warehouse.
func groupHub(handle string) *fio.GroupHub {
	return &fio.GroupHub{
		CXWarehouses: []fio.CXWarehouse{
			{
				WarehouseLocationName:      "Antares Station Warehouse",
				WarehouseLocationNaturalID: "ANT",
				PlayerCXWarehouses: []fio.PlayerWarehouse{
					{PlayerName: handle, Items: []fio.Item{{MaterialTicker: "RAT", Units: 100}}, LastUpdated: ts(5)},
				},
			},
		},
		PlayerModels: []fio.PlayerModel{
			{
				UserName: handle,
				Locations: []fio.PlayerLocation{
					{
						LocationIdentifier: "UV-351a",
						LocationName:       "Katoa",
						BaseStorage: &fio.Storage{
							Items:       []fio.Item{{MaterialTicker: "DW", Units: 40}, {MaterialTicker: "XYZ", Units: 1}},
							LastUpdated: ts(1),
						},
						WarehouseStorage: &fio.Storage{
							Items:       []fio.Item{{MaterialTicker: "H2O", Units: 7}},
							LastUpdated: ts(2),
						},
					},
					{
						LocationIdentifier: "ZZ-000x",
						LocationName:       "Nowhere",
						BaseStorage:        &fio.Storage{Items: []fio.Item{{MaterialTicker: "DW", Units: 1}}},
					},
				},
			},
		},
	}
}

type fakeGroupHub struct {
	mu    sync.Mutex
	hubs  map[string]*fio.GroupHub
	err   error
	calls int
}

func (f *fakeGroupHub) GroupHub(_ context.Context, _ string, handles ...string) (*fio.GroupHub, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if len(handles) == 0 {
		return &fio.GroupHub{}, nil
	}
	if hub, ok := f.hubs[handles[0]]; ok {
		return hub, nil
	}
	return &fio.GroupHub{}, nil
}
