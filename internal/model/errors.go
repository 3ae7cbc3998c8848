package model

import "errors"

var (
	// ErrValidation marks a record that is not acceptable for persistence.
	ErrValidation = errors.New("validation error")
	// ErrNotFound indicates no lesson carries the requested id.
	ErrNotFound = errors.New("lesson not found")
	// ErrConflict indicates an update was based on a stale revision.
	ErrConflict = errors.New("revision conflict")
	// ErrImportParse indicates a malformed import payload.
	ErrImportParse = errors.New("malformed import payload")
	// ErrPersistence indicates the record store could not be read or written.
	ErrPersistence = errors.New("persistence error")
	// ErrNotConfirmed indicates a delete was declined.
	ErrNotConfirmed = errors.New("deletion not confirmed")
)
