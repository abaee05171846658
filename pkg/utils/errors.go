package utils

import (
	"errors"
	"fmt"
)

// Error kinds returned by services; handlers map them to HTTP status codes
// with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrExternal     = errors.New("external service unavailable")
)

var ErrInvalidID = NewError(ErrValidation, "invalid id")

// Error is a client-safe message tagged with one of the kinds above.
// Fields holds per-field validation messages when present.
type Error struct {
	Kind   error
	Msg    string
	Fields map[string]string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func NewError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) error { return NewError(ErrValidation, format, args...) }

func NotFound(format string, args ...any) error { return NewError(ErrNotFound, format, args...) }

func Conflict(format string, args ...any) error { return NewError(ErrConflict, format, args...) }

func Forbidden(format string, args ...any) error { return NewError(ErrForbidden, format, args...) }

func Unauthorized(format string, args ...any) error { return NewError(ErrUnauthorized, format, args...) }

// External wraps a collaborator failure. The cause stays in the chain for
// logging but is not part of the message.
func External(cause error, format string, args ...any) error {
	return &externalError{msg: fmt.Sprintf(format, args...), cause: cause}
}

type externalError struct {
	msg   string
	cause error
}

func (e *externalError) Error() string { return e.msg }

func (e *externalError) Unwrap() []error { return []error{ErrExternal, e.cause} }
