package backend

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound means the backend has no such resource.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized means the token was missing or rejected.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrRejected means the backend refused the request (validation).
	ErrRejected = errors.New("request rejected")
	// ErrServer means the backend failed on its side.
	ErrServer = errors.New("backend error")
)

// StatusError wraps a non-2xx response so callers can branch on the class
// via errors.Is while keeping the endpoint and code for logs.
type StatusError struct {
	Endpoint string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: http %d", e.Endpoint, e.Code)
}

func (e *StatusError) Unwrap() error {
	switch {
	case e.Code == http.StatusNotFound:
		return ErrNotFound
	case e.Code == http.StatusUnauthorized || e.Code == http.StatusForbidden:
		return ErrUnauthorized
	case e.Code >= 500:
		return ErrServer
	case e.Code >= 400:
		return ErrRejected
	}
	return nil
}
