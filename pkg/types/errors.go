package types

import "errors"

// Store operation errors.
var (
	ErrNotFound    = errors.New("record not found")
	ErrInvalidID   = errors.New("invalid record ID")
	ErrInvalidName = errors.New("invalid name")
)

// Structural layout errors. These indicate a caller contract violation;
// the layout is left unchanged when one is returned.
var (
	ErrUnknownCategory  = errors.New("unknown entry category")
	ErrDuplicateSection = errors.New("duplicate section")
	ErrUnknownSection   = errors.New("unknown section")
	ErrIndexOutOfRange  = errors.New("index out of range")
)
