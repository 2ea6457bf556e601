package api

import (
	"errors"
	"net/http"

	"github.com/okian/dugout/internal/domain/model"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrInvalidPatch = errors.New("invalid patch")
)

// Error codes carried in the error envelope.
const (
	codeBadRequest            = "bad_request"
	codeNotFound              = "not_found"
	codeUpstreamUnavailable   = "upstream_unavailable"
	codeGenerationUnavailable = "generation_unavailable"
	codeInternal              = "internal_error"
)

// classify maps a domain error onto an HTTP status and envelope code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, model.ErrValidation), errors.Is(err, ErrBadRequest), errors.Is(err, ErrInvalidPatch):
		return http.StatusBadRequest, codeBadRequest
	case errors.Is(err, model.ErrUpstreamUnavailable):
		return http.StatusBadGateway, codeUpstreamUnavailable
	case errors.Is(err, model.ErrGenerationUnavailable):
		return http.StatusServiceUnavailable, codeGenerationUnavailable
	default:
		return http.StatusInternalServerError, codeInternal
	}
}
