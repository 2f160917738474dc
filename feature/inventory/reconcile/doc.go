// Package reconcile adapts the FIO group hub payload to the core reconcile engine.
//
// The group hub describes a player's storages in two independent places: the
// per-player model lists planet sites (base store and optional warehouse store),
// and the CX warehouse list holds one sub-entry per player for each station
// warehouse. Snapshot indexes both by lowercased handle and walks planets first,
// then station warehouses. When both describe the same warehouse, the engine's
// dedup keeps the first one.
package reconcile
