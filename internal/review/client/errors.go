package client

import (
	"errors"
	"fmt"
)

// ErrTimeout marks requests that exceeded their client timeout. A
// timeout never surfaces as a silent empty response.
var ErrTimeout = errors.New("request timed out")

// APIError is an HTTP-level failure from the backend, carrying the
// envelope code and message when the backend supplied them.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
	Endpoint   string
	Err        error // optional domain sentinel for errors.Is
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s (status %d)", e.Endpoint, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d", e.Endpoint, e.StatusCode)
}

func (e *APIError) Unwrap() error {
	return e.Err
}
