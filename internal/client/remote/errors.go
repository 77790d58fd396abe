package remote

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrRejected     = errors.New("request rejected")
)

// TransportError describes a failed remote call: network failure, timeout
// or a non-2xx answer. Err is one of the sentinels above, so callers can
// match with errors.Is.
type TransportError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %v: %s", e.Method, e.Path, e.Err, e.Message)
	}
	return fmt.Sprintf("%s %s: HTTP %d: %v: %s", e.Method, e.Path, e.StatusCode, e.Err, e.Message)
}

func (e *TransportError) Unwrap() error { return e.Err }

// mapStatus picks the sentinel for an HTTP status.
func mapStatus(code int) error {
	switch {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return ErrUnauthorized
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusRequestTimeout, code == http.StatusTooManyRequests, code >= 500:
		return ErrUnavailable
	default:
		return ErrRejected
	}
}
