package inventory

import "errors"

var (
	// ErrUserNotFound is returned when the user id does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrNotLinked is returned when the user has no FIO credentials.
	ErrNotLinked = errors.New("user has no linked FIO account")
)
