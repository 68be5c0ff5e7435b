package repository

import "errors"

// Storage errors shared by both backends. The gorm implementations translate
// driver errors into these so services never depend on which backend is
// selected at startup.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict indicates a guarded write lost against the current state of
	// the record, e.g. responding to an invitation that is no longer pending.
	ErrConflict = errors.New("record state conflict")
)
