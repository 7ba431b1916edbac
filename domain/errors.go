package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized indicates a missing or expired session.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the session may not act on the resource.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates the post or user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmptyPost indicates the user submitted blank content.
	ErrEmptyPost = errors.New("post cannot be empty")

	// ErrCSRF indicates no anti-forgery token could be obtained.
	ErrCSRF = errors.New("csrf token unavailable")
)

// APIError carries the {"error": "..."} body returned by the service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned %d", e.Status)
	}
	return e.Message
}

// Unwrap lets errors.Is match the sentinel for the status code.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}
