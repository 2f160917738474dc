package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestUser_IsLinked(t *testing.T) {
	assert.False(t, User{}.IsLinked())
	assert.False(t, User{FioUsername: "trader"}.IsLinked())
	assert.True(t, User{FioUsername: "trader", FioAPIKey: "key"}.IsLinked())
}

func TestAutoMigrate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:models_migrate?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(All()...))

	user := User{Username: "alice", FioUsername: "Alice", FioAPIKey: "k", ExcludedLocations: []string{"ANT", "Katoa"}}
	require.NoError(t, db.Create(&user).Error)

	var loaded User
	require.NoError(t, db.First(&loaded, user.ID).Error)
	assert.Equal(t, []string{"ANT", "Katoa"}, loaded.ExcludedLocations)

	for _, table := range []string{"locations", "commodities", "users", "storages", "inventory_items"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}
