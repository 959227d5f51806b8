package session

import (
	"errors"
	"fmt"
)

// Transport error kinds reported by a Session.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrRemote       = errors.New("remote error")
	ErrNetwork      = errors.New("network error")
)

// Error pairs a transport error kind with request detail.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Message)
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// NewError creates a transport error of the given kind.
func NewError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
