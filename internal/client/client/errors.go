package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status int
	// Message is the backend-supplied explanation, empty if none was given.
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// Unwrap lets errors.Is match the sentinel that corresponds to the status.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrUnavailable
	}
	return nil
}

// IsValidation reports whether err is a 400 answer carrying a message meant
// for the user, and returns that message.
func IsValidation(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}

// UserMessage returns the validation message carried by err, or fallback.
func UserMessage(err error, fallback string) string {
	if msg, ok := IsValidation(err); ok {
		return msg
	}
	return fallback
}
