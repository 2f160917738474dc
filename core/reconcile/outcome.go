package reconcile

import (
	"fmt"
	"time"
)

// Outcome is the result of one reconciliation run.
type Outcome struct {
	// Success is true iff Errors is empty.
	Success bool `json:"success"`
	// Inserted counts inventory item rows written.
	Inserted int `json:"inserted"`
	// StorageLocations counts storage rows written.
	StorageLocations int `json:"storageLocations"`
	// SkippedExcludedLocations counts items skipped due to user exclusion.
	SkippedExcludedLocations int `json:"skippedExcludedLocations"`
	// SkippedUnknownLocations counts items skipped because the location is not recognized.
	SkippedUnknownLocations int `json:"skippedUnknownLocations"`
	// SkippedUnknownCommodities counts items skipped because the ticker is not recognized.
	SkippedUnknownCommodities int `json:"skippedUnknownCommodities"`
	// Errors holds one entry per failed fetch, delete or insert.
	Errors []string `json:"errors"`
	// LastSourceTimestamp is the most recent in-game update time, if any.
	LastSourceTimestamp *time.Time `json:"lastSourceTimestamp"`
}

func newOutcome() *Outcome {
	return &Outcome{Errors: []string{}}
}

func failedOutcome(err error) *Outcome {
	out := newOutcome()
	out.addError("%v", err)
	out.finish(nil)
	return out
}

func (o *Outcome) addError(format string, args ...any) {
	o.Errors = append(o.Errors, fmt.Sprintf(format, args...))
}

func (o *Outcome) finish(freshness *time.Time) {
	o.LastSourceTimestamp = freshness
	o.Success = len(o.Errors) == 0
}

// Skipped returns the total of all skip counters.
func (o *Outcome) Skipped() int {
	return o.SkippedExcludedLocations + o.SkippedUnknownLocations + o.SkippedUnknownCommodities
}
