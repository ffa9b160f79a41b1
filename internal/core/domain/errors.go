package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrTransport        = errors.New("remote api unreachable")
	ErrUnauthorized     = errors.New("not authenticated")
	ErrForbidden        = errors.New("access forbidden")
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrMalformedSession = errors.New("malformed session data")
	ErrNoSession        = errors.New("no session")
	ErrPostalNotFound   = errors.New("postal code not found")
)

// APIError is a non-2xx answer from the remote API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

// Unwrap maps the status onto the sentinel of the same class so callers can
// use errors.Is without looking at codes.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusConflict:
		return ErrValidation
	}
	return nil
}

// UserMessage picks the text shown to the user for err, preferring the API's
// own message when there is one.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, ErrTransport) {
		return "Não foi possível contatar o servidor."
	}
	return fallback
}
