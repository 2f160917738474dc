package reconcile

import "time"

// ResolveFreshness returns the most recent timestamp, or nil if there are none.
func ResolveFreshness(timestamps []time.Time) *time.Time {
	if len(timestamps) == 0 {
		return nil
	}
	latest := timestamps[0]
	for _, ts := range timestamps[1:] {
		if ts.After(latest) {
			latest = ts
		}
	}
	return &latest
}

// Freshness collects per-storage update times during a walk.
type Freshness struct {
	observed []time.Time
}

// Observe records a timestamp. Nil and zero values are ignored.
func (f *Freshness) Observe(ts *time.Time) {
	if ts == nil || ts.IsZero() {
		return
	}
	f.observed = append(f.observed, *ts)
}

// Resolve returns the latest observed timestamp.
func (f *Freshness) Resolve() *time.Time {
	return ResolveFreshness(f.observed)
}
