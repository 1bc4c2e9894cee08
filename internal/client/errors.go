package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound matches any 404 reply from the API, see APIError.Is.
var ErrNotFound = errors.New("task not found")

// APIError is a non-success reply from the Task API, typically a store
// failure reported as 500.
type APIError struct {
	StatusCode int
	Message    string
	Detail     string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Detail != "" {
		return fmt.Sprintf("api: %d %s: %s", e.StatusCode, msg, e.Detail)
	}
	return fmt.Sprintf("api: %d %s", e.StatusCode, msg)
}

// Is makes a 404 reply match ErrNotFound.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// TransportError is a failure to reach the API or read its reply.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
