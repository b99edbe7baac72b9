package api

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork marks transport failures (DNS, refused connection, timeout).
	// The request may or may not have reached the server.
	ErrNetwork = errors.New("network failure")

	// ErrUnauthorized matches any 401 response. APIError.Is makes
	// errors.Is(err, ErrUnauthorized) true for those.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-2xx HTTP response. Detail carries the human-readable
// message from the {"detail": ...} body and is empty when the body had none;
// callers fall back to a generic message in that case.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Detail)
}

// Is reports 401 responses as ErrUnauthorized so callers can branch on the
// auth taxonomy without inspecting status codes.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == 401
}

// Message returns Detail, or fallback when the server sent no detail field.
func (e *APIError) Message(fallback string) string {
	if e.Detail == "" {
		return fallback
	}
	return e.Detail
}
