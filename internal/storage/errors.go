package storage

import "errors"

// Error taxonomy shared by both backends. Callers match with errors.Is; the
// wrapped message carries the entity and field detail.
var (
	// ErrValidation indicates a malformed required field, such as an empty
	// book title or an out-of-range rating.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicate indicates a uniqueness violation on an entity's natural
	// key or an association pairing.
	ErrDuplicate = errors.New("duplicate entry")

	// ErrNotFound indicates a referenced id is absent.
	ErrNotFound = errors.New("entry not found")

	// ErrAlreadyInitialized is returned by Initialize without force when the
	// backing store already exists. Existing data is left untouched.
	ErrAlreadyInitialized = errors.New("store already initialized")

	// ErrInvalidFilter indicates an unknown view column or an operator
	// incompatible with the column's type.
	ErrInvalidFilter = errors.New("invalid filter")

	// ErrStorageIO indicates an underlying file or connection failure. These
	// are fatal for the operation and never retried.
	ErrStorageIO = errors.New("storage I/O failure")
)
