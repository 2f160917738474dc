package inventory

import "time"

// Config holds configuration for inventory sync runs.
type Config struct {
	// ArchiveSnapshots writes each fetched payload to object storage.
	ArchiveSnapshots bool `mapstructure:"archive_snapshots" default:"false"`
	// ArchivePrefix is the object key prefix for archived payloads.
	ArchivePrefix string `mapstructure:"archive_prefix" default:"snapshots"`
	// ArchiveKeep is how many payloads to keep per user. Zero keeps all.
	ArchiveKeep int `mapstructure:"archive_keep" default:"20"`
	// LockTTLSeconds bounds how long a crashed run can block its user.
	// Held locks are renewed, so runs may take longer than this.
	LockTTLSeconds int `mapstructure:"lock_ttl_seconds" default:"600"`
}

// LockTTL returns the lock TTL as a duration.
func (c Config) LockTTL() time.Duration {
	return time.Duration(c.LockTTLSeconds) * time.Second
}
