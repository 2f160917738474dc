package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Run results.
const (
	ResultSuccess = "success"
	ResultPartial = "partial"
	ResultFailed  = "failed"
	ResultBusy    = "busy"
)

// Skip reasons.
const (
	ReasonExcludedLocation = "excluded_location"
	ReasonUnknownLocation  = "unknown_location"
	ReasonUnknownCommodity = "unknown_commodity"
)

// SyncMetrics records inventory sync runs. A nil *SyncMetrics is a no-op.
type SyncMetrics struct {
	runs     *prometheus.CounterVec
	inserted prometheus.Counter
	storages prometheus.Counter
	skipped  *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewSyncMetrics registers the sync metrics on the provided registerer.
func NewSyncMetrics(reg prometheus.Registerer) *SyncMetrics {
	if reg == nil {
		return nil
	}
	m := &SyncMetrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inventory_sync_runs_total",
			Help: "Inventory sync runs by result.",
		}, []string{"result"}),
		inserted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inventory_sync_items_inserted_total",
			Help: "Inventory item rows written by sync runs.",
		}),
		storages: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inventory_sync_storages_inserted_total",
			Help: "Storage rows written by sync runs.",
		}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inventory_sync_items_skipped_total",
			Help: "Inventory items skipped by sync runs, by reason.",
		}, []string{"reason"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "inventory_sync_duration_seconds",
			Help:    "Duration of inventory sync runs in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.runs, m.inserted, m.storages, m.skipped, m.duration)
	return m
}

// Run holds the counters of one finished run.
type Run struct {
	Result             string
	Inserted           int
	Storages           int
	SkippedExcluded    int
	SkippedLocations   int
	SkippedCommodities int
	Duration           time.Duration
}

// Observe records a finished run.
func (m *SyncMetrics) Observe(r Run) {
	if m == nil {
		return
	}
	result := r.Result
	if result == "" {
		result = ResultFailed
	}
	m.runs.WithLabelValues(result).Inc()
	m.inserted.Add(float64(r.Inserted))
	m.storages.Add(float64(r.Storages))
	m.skipped.WithLabelValues(ReasonExcludedLocation).Add(float64(r.SkippedExcluded))
	m.skipped.WithLabelValues(ReasonUnknownLocation).Add(float64(r.SkippedLocations))
	m.skipped.WithLabelValues(ReasonUnknownCommodity).Add(float64(r.SkippedCommodities))
	if r.Duration > 0 {
		m.duration.Observe(r.Duration.Seconds())
	}
}

// IncBusy counts a run rejected because another one held the lock.
func (m *SyncMetrics) IncBusy() {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(ResultBusy).Inc()
}
