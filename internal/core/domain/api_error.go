package domain

import (
	"errors"
	"net/http"
)

// FieldError is a single server-side validation problem attached to a form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is the normalized shape of every non-2xx backend response.
type APIError struct {
	Status  int          `json:"status"`
	Message string       `json:"message,omitempty"`
	Code    string       `json:"code,omitempty"`
	Fields  []FieldError `json:"errors,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if text := http.StatusText(e.Status); text != "" {
		return text
	}
	return ErrRequestFailed.Error()
}

// Unwrap lets callers match every APIError against ErrRequestFailed.
func (e *APIError) Unwrap() error {
	return ErrRequestFailed
}

// IsValidation reports whether the error carries per-field problems.
func (e *APIError) IsValidation() bool {
	return len(e.Fields) > 0
}

// AsAPIError extracts the APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// ServerMessage returns the message the backend attached to err, if any.
func ServerMessage(err error) string {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Message
	}
	return ""
}

// IsUnauthenticated reports whether err originates from a rejected session.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}
