// Package server holds the HTTP server configuration.
//
// The start command owns the Fiber application lifecycle; this package only
// defines the settings it reads: bind address, the API key guarding every
// route, and whether the inventory tables are auto-migrated on boot.
package server
