package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized is wrapped by *Error when the backend rejects the token.
var ErrUnauthorized = errors.New("api: unauthorized")

// Error is a failed API call: a non-2xx status or a body with ok=false.
type Error struct {
	Status  int    // HTTP status code
	Action  string // "start", "coin" or "end"
	Message string // Server message or response text
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %s: %d %s", e.Action, e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api: %s: %d: %s", e.Action, e.Status, e.Message)
}

// Unwrap exposes ErrUnauthorized for 401 responses.
func (e *Error) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}
