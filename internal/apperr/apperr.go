// Package apperr defines the closed set of error kinds surfaced by repolens.
// Every failure crossing a package boundary is wrapped into an Error carrying
// a kind, an HTTP status code, and a message safe to show to callers.
package apperr

import (
	"errors"
	"net/http"
)

// Kind identifies the failure category of an Error.
type Kind string

const (
	// KindInput marks malformed caller input such as a bad repository URL.
	KindInput Kind = "input"
	// KindUpstream marks failures of the repository hosting API.
	KindUpstream Kind = "upstream"
	// KindEmptyRepository marks a repository whose tree contains no entries.
	KindEmptyRepository Kind = "empty_repository"
	// KindModel marks failures of the model service or of response recovery.
	KindModel Kind = "model"
	// KindUnexpected marks anything that does not fit the other kinds.
	KindUnexpected Kind = "unexpected"
)

// Error is a tagged failure with an externally visible status and message.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

// Error returns the caller-facing message.
func (applicationError *Error) Error() string {
	return applicationError.Message
}

// Unwrap exposes the wrapped cause.
func (applicationError *Error) Unwrap() error {
	return applicationError.Err
}

// New constructs an Error without a wrapped cause.
func New(kind Kind, statusCode int, message string) *Error {
	return &Error{Kind: kind, StatusCode: statusCode, Message: message}
}

// Wrap constructs an Error around an underlying cause.
func Wrap(kind Kind, statusCode int, message string, cause error) *Error {
	return &Error{Kind: kind, StatusCode: statusCode, Message: message, Err: cause}
}

// StatusCode reports the HTTP status for any error, defaulting to 500 for
// errors outside the closed set.
func StatusCode(err error) int {
	var applicationError *Error
	if errors.As(err, &applicationError) {
		return applicationError.StatusCode
	}
	return http.StatusInternalServerError
}

// KindOf reports the kind for any error, defaulting to KindUnexpected.
func KindOf(err error) Kind {
	var applicationError *Error
	if errors.As(err, &applicationError) {
		return applicationError.Kind
	}
	return KindUnexpected
}

// PublicMessage reports the caller-safe message for any error. Errors outside
// the closed set map to a generic message so internal detail never leaks.
func PublicMessage(err error) string {
	var applicationError *Error
	if errors.As(err, &applicationError) {
		return applicationError.Message
	}
	return "An unexpected error occurred. Please try again."
}
