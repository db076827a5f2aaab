// Package apperr defines the error taxonomy shared by services and handlers.
// Every failure crossing the service boundary is classified into one Kind so
// callers can branch on it instead of matching message strings.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindUnauthenticated
	KindForbidden
	KindValidation
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Error carries a Kind, a human-readable message and an optional cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes errors.Is match two taxonomy errors by Kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

func NotFound(msg string) *Error        { return &Error{Kind: KindNotFound, Msg: msg} }
func Unauthenticated(msg string) *Error { return &Error{Kind: KindUnauthenticated, Msg: msg} }
func Forbidden(msg string) *Error       { return &Error{Kind: KindForbidden, Msg: msg} }
func Validation(msg string) *Error      { return &Error{Kind: KindValidation, Msg: msg} }
func Conflict(msg string) *Error        { return &Error{Kind: KindConflict, Msg: msg} }

// Wrap attaches a cause to a taxonomy error.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf extracts the Kind from err, or KindUnknown for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// HTTPStatus maps a Kind to its stable HTTP status code.
func HTTPStatus(k Kind) int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindValidation, KindConflict:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
