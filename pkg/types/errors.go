package types

import "errors"

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// Repository operation errors.
var (
	ErrNotFound    = errors.New("entity not found")
	ErrInvalidID   = errors.New("invalid entity ID")
	ErrInvalidData = errors.New("invalid entity data")
)

// Entity validation errors.
var (
	ErrInvalidName       = errors.New("invalid name")
	ErrInvalidGeometry   = errors.New("selection geometry out of bounds")
	ErrInvalidPage       = errors.New("page number must be positive")
	ErrInvalidConfidence = errors.New("confidence must be between 0 and 1")
	ErrInvalidDirective  = errors.New("invalid directive")
	ErrInvalidState      = errors.New("invalid state value")
)
