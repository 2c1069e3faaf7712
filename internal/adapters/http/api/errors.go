package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest       = errors.New("bad request")
	ErrSchema           = errors.New("input record does not match schema")
	ErrMethodNotAllowed = errors.New("method not allowed")
)
