package registry

import (
	"errors"
	"fmt"
)

// Domain error kinds. Every failure surfaced by a manager wraps one of
// these so callers can branch with errors.Is.
var (
	ErrValidation     = errors.New("validation failed")
	ErrNotFound       = errors.New("resource not found")
	ErrOperation      = errors.New("operation failed")
	ErrNotImplemented = errors.New("not implemented")
	ErrUnexpected     = errors.New("unexpected error")
)

// Error ties an error kind to a message and the underlying cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Message)
	}
	return e.Kind.Error()
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrapErr builds an Error of the given kind, appending the cause to the
// message when there is one.
func wrapErr(kind error, cause error, format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return &Error{Kind: kind, Message: msg, Err: cause}
}

// validationErr reports bad caller input. Never carries a cause.
func validationErr(format string, args ...any) *Error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// notImplemented reports stub functionality outside the implemented scope.
func notImplemented(what string) *Error {
	return &Error{Kind: ErrNotImplemented, Message: what + " not yet implemented"}
}
