package ports

import "errors"

// Common errors returned by registry and configuration plumbing.
var (
	// ErrUnknownIndicator indicates that no factory is registered for
	// the requested indicator type.
	ErrUnknownIndicator = errors.New("unknown indicator type")

	// ErrDuplicateIndicator indicates that a factory is already
	// registered for the indicator type.
	ErrDuplicateIndicator = errors.New("indicator type already registered")

	// ErrEmptyIndicatorID indicates that an indicator was requested with
	// an empty identifier.
	ErrEmptyIndicatorID = errors.New("indicator id cannot be empty")
)
