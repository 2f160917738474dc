// Package utils provides small helpers shared across packages, mainly the key
// normalization used when matching exclusion entries and player handles.
package utils
