package repository

import "errors"

// Sentinel kinds for override store errors.
var (
	ErrInvalidID     = errors.New("player id is required")
	ErrUnknownDriver = errors.New("unknown store driver")
	ErrClosed        = errors.New("store closed")
)
