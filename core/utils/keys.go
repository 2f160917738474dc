package utils

import "strings"

// NormalizeKey lowercases and trims a user supplied identifier so values coming
// from configuration, the database and the external API compare equal.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// KeySet builds a set of normalized keys, dropping blanks.
func KeySet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		key := NormalizeKey(v)
		if key == "" {
			continue
		}
		set[key] = struct{}{}
	}
	return set
}

// StringSet builds an exact-match set. Used for identifiers that are
// case-sensitive as issued (location natural ids, tickers).
func StringSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
