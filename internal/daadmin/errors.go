// Package daadmin provides an HTTP client for the da.live content-admin
// API: listing sources, creating folders, and moving items.
package daadmin

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for HTTP status code classification.
// Use errors.Is(err, daadmin.ErrNotFound) to check.
var (
	ErrBadRequest   = errors.New("daadmin: bad request")
	ErrUnauthorized = errors.New("daadmin: unauthorized")
	ErrForbidden    = errors.New("daadmin: forbidden")
	ErrNotFound     = errors.New("daadmin: not found")
	ErrServerError  = errors.New("daadmin: server error")
)

// APIError wraps a sentinel error with the HTTP status code and the
// response body text for debugging.
type APIError struct {
	StatusCode int
	Body       string
	Err        error // sentinel, for errors.Is()
}

func (e *APIError) Error() string {
	return fmt.Sprintf("daadmin: HTTP %d: %s", e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// classifyStatus maps an HTTP status code to a sentinel error.
// Returns nil for codes with no dedicated sentinel.
func classifyStatus(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	default:
		if code >= http.StatusInternalServerError {
			return ErrServerError
		}
		return nil
	}
}
