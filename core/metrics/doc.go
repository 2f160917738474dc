// Package metrics exposes prometheus instrumentation for inventory sync runs.
package metrics
