// Package apierr classifies failures of calls to the remote roster service.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// NetworkUnreachableMsg is shown whenever the backend could not be reached at all.
const NetworkUnreachableMsg = "Network error: Unable to reach backend."

// TransportError means the request never produced an HTTP response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s (%v)", NetworkUnreachableMsg, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError means the backend answered with a non-success HTTP status.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return e.Body
	}
	return fmt.Sprintf("%s failed with status %d", e.Op, e.StatusCode)
}

// AppError means the backend answered 2xx but reported {success:false,message}.
type AppError struct {
	Op      string
	Message string
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s failed", e.Op)
}

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsNotFound reports whether err is a StatusError with a 404 status.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// StatusCode returns the HTTP status carried by err, or 0 if none.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
