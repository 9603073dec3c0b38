package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnreachable is returned when the API cannot be contacted at all.
	ErrUnreachable = errors.New("could not connect to the API")

	// ErrNotLoggedIn is returned by TokenStore.Load when no token is saved.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrNothingToUpdate is returned by UpdateTask for an empty update,
	// before any request is made.
	ErrNothingToUpdate = errors.New("nothing to update")
)

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	// Message is the "error" field of the response body, if any.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// StatusCode returns the HTTP status of err if it is an APIError, otherwise 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
