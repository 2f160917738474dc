package reconcile

import "kawa-inventory/core/utils"

// Exclusions is a user's set of locations to skip, stored lowercased.
type Exclusions map[string]struct{}

// NewExclusions normalizes the configured entries. Entries may be either
// location natural ids or display names.
func NewExclusions(entries []string) Exclusions {
	return Exclusions(utils.KeySet(entries))
}

// IsExcluded reports whether either the id or the name matches an entry,
// ignoring case. There is no partial matching.
func (e Exclusions) IsExcluded(locationID, locationName string) bool {
	if len(e) == 0 {
		return false
	}
	if _, ok := e[utils.NormalizeKey(locationID)]; ok {
		return true
	}
	_, ok := e[utils.NormalizeKey(locationName)]
	return ok
}
