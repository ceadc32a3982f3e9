package types

import "errors"

// Field access and mutation errors.
var (
	ErrUnknownField = errors.New("field is not in the payload schema")
	ErrMissingInput = errors.New("no value given")
	ErrInvalidValue = errors.New("invalid value")
)

// Structural errors.
var (
	ErrUnsupportedOperation = errors.New("operation not supported")
	ErrStreamUnusable       = errors.New("data stream failed read/seek probe")
)

// Export errors.
var (
	ErrIncompleteExport = errors.New("field excluded by target filtering")
	ErrTargetRequired   = errors.New("minimum version filter requires a target")
)
