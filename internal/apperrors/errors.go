// Package apperrors defines the error taxonomy shared by services and HTTP
// handlers: validation (400), conflict (409), not-found (404) and everything
// else (500, generic message).
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound indicates that no record matched, or that the record is
	// not in the state the operation requires.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a uniqueness violation, such as a second open
	// sells record for the same menu item.
	ErrConflict = errors.New("conflict")
	// ErrValidation indicates missing or malformed caller input.
	ErrValidation = errors.New("invalid input")
)

// NotFound wraps ErrNotFound with a caller-facing message.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
}

// Conflict wraps ErrConflict with a caller-facing message.
func Conflict(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConflict}, args...)...)
}

// Invalid wraps ErrValidation with a caller-facing message.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

// HTTPStatus maps an error to the HTTP status it should produce.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the caller-facing message for an error. Unexpected errors
// collapse to a generic message so internals never leak to clients.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound), errors.Is(err, ErrConflict):
		return trimSentinel(err.Error())
	default:
		return "Internal server error"
	}
}

// trimSentinel strips the sentinel prefix ("not found: ", "conflict: ", ...)
// so clients see only the descriptive part.
func trimSentinel(msg string) string {
	for _, sentinel := range []string{ErrNotFound.Error(), ErrConflict.Error(), ErrValidation.Error()} {
		prefix := sentinel + ": "
		if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
			return msg[len(prefix):]
		}
	}
	return msg
}
