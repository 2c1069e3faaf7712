package collector

import "errors"

// Sentinel kinds for collector errors. These allow errors.Is from callers.
var (
	ErrUnknownField = errors.New("unknown form field")
	ErrInvalidValue = errors.New("invalid field value")
)
