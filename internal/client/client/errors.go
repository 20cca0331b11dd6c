package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable wraps every transport failure: no response was received.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized matches a *StatusError carrying 401 or 403.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound matches a *StatusError carrying 404.
	ErrNotFound = errors.New("not found")
	// ErrDecode wraps a response body that is not the expected JSON.
	ErrDecode = errors.New("decode response")
	// ErrTooLarge wraps a response body beyond the read cap. Nothing of it
	// is returned.
	ErrTooLarge = errors.New("response too large")
)

// StatusError is a response received with a non-2xx status.
type StatusError struct {
	StatusCode int
	Method     string
	Path       string
	// Body holds the start of the response body, for diagnostics.
	Body string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// StatusCode returns the HTTP status carried by err, or 0 when err did not
// come from a received response.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
