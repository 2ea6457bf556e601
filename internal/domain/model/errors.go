package model

import "errors"

// Sentinel error kinds shared by every layer. Callers match with errors.Is;
// producers wrap them with operation context.
var (
	// ErrUpstreamUnavailable means the upstream dataset could not be fetched or
	// was not a JSON array. Callers may retry.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrNotFound means no player with the requested id exists in the merged view.
	ErrNotFound = errors.New("player not found")

	// ErrValidation means a patch or query parameter was malformed.
	ErrValidation = errors.New("validation failed")

	// ErrGenerationUnavailable means no text generator is configured.
	ErrGenerationUnavailable = errors.New("generation unavailable")
)
