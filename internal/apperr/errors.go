// Package apperr defines the error kinds returned by launch control and their
// mapping onto HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure for the caller.
type Kind string

const (
	// KindBadInput covers parameter, capacity, fuel and state violations.
	KindBadInput Kind = "BAD_INPUT"
	// KindInvalidCredentials means the session could not be resolved.
	KindInvalidCredentials Kind = "INVALID_CREDENTIALS"
	// KindInaccessibleValue means the mission is missing or not owned by the caller.
	KindInaccessibleValue Kind = "INACCESSIBLE_VALUE"
)

// HTTPStatus returns the status code used for the kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindBadInput:
		return http.StatusBadRequest
	case KindInvalidCredentials:
		return http.StatusUnauthorized
	case KindInaccessibleValue:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified launch-control failure.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Sentinels for errors.Is checks.
var (
	ErrBadInput           = &Error{Kind: KindBadInput, Message: "bad input"}
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials, Message: "invalid credentials"}
	ErrInaccessibleValue  = &Error{Kind: KindInaccessibleValue, Message: "inaccessible value"}
)

// BadInput builds a KindBadInput error.
func BadInput(format string, args ...any) *Error {
	return &Error{Kind: KindBadInput, Message: fmt.Sprintf(format, args...)}
}

// InvalidCredentials builds a KindInvalidCredentials error.
func InvalidCredentials(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidCredentials, Message: fmt.Sprintf(format, args...)}
}

// InaccessibleValue builds a KindInaccessibleValue error.
func InaccessibleValue(format string, args ...any) *Error {
	return &Error{Kind: KindInaccessibleValue, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies cause under kind.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// HTTPStatus maps err onto a status code; unclassified errors are 500.
func HTTPStatus(err error) int {
	return KindOf(err).HTTPStatus()
}
