package client

import "errors"

// Sentinel kinds for client errors.
var (
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrInvalidFlags     = errors.New("invalid flags")
)
