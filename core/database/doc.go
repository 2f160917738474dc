// Package database handles database connections and schema inspection.
//
// It wraps GORM so the rest of the application can open a connection from
// configuration without caring which dialect is behind it. MySQL is the default;
// Postgres and SQLite are selected through the driver setting (SQLite is what the
// tests run against).
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns read the live column list of a table so the
// integrity feature can confirm the inventory tables look the way the sync engine
// expects before a run writes to them.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "storages", []string{"user_id", "storage_key"})
package database
