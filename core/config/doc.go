// Package config provides configuration management for the inventory service.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (host, port, API key, migrate)
//   - Database: driver (mysql, postgres, sqlite) and connection details
//   - Storage: S3/MinIO credentials and the snapshot archive bucket
//   - Log: Logging level and format
//   - Fio: FIO REST API base URL and timeout
//   - Sync: snapshot archiving and run lock TTL
//   - Redis: run lock backend
//
// Every key maps to an environment variable by replacing dots with underscores,
// e.g. DATABASE_DRIVER or SYNC_ARCHIVE_SNAPSHOTS.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
