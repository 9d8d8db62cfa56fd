package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidConfig         = errors.New("invalid configuration")
	ErrFileRead              = errors.New("could not read file")
	ErrDictionaryUnavailable = errors.New("dictionary unavailable")
	ErrStoreUnavailable      = errors.New("store unavailable")
)
