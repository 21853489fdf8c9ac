package repositories

import "errors"

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when an insert trips the unique index
	// on user email. It is the authoritative duplicate-signup signal; the
	// service-level pre-check only short-circuits the common case.
	ErrDuplicateEmail = errors.New("email already registered")
)
