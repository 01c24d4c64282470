// Package repositories holds the errors shared by every repository and store
// implementation in the system.
package repositories

import "errors"

var (
	// ErrNotFound reports that no record matched the given id. Absence is a
	// normal, representable outcome, not a failure of the store.
	ErrNotFound = errors.New("record not found")

	// ErrStorageUnavailable reports a transient backend failure such as a
	// lost connection or timeout. The bridge layer answers 503 so callers
	// know to retry.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
