// Package errors augments the standard errors with a Wrap() method,
// so that sentinel errors declared by status packages can carry a
// cause without resorting to fmt.Errorf("...: %w", err).
package errors

import (
	stderr "errors"
	"fmt"
)

var _ error = New("")

// New builds an Error from a message
func New(msg string) *Error {
	return &Error{msg: msg}
}

// Newf builds an Error from a format string
func Newf(format string, args ...interface{}) *Error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

// Error is an error with a message and an optional wrapped cause.
//
// Unlike fmt.Errorf wrapping, the message of the sentinel is kept
// distinct from the message of the cause, so errors.Is works on the
// sentinel itself.
type Error struct {
	msg string
	err error
}

// Error message
func (e *Error) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

// Unwrap nested error
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// Wrap a cause under this error. The receiver is cloned so sentinels
// declared as package variables are never mutated.
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, err: err}
}

// WrapMessage wraps a cause annotated with an extra message
func (e *Error) WrapMessage(err error, format string, args ...interface{}) *Error {
	return &Error{msg: e.msg, err: Newf(format, args...).Wrap(err)}
}

// Is reports whether this error matches target
func (e *Error) Is(target error) bool {
	if o, ok := target.(*Error); ok {
		return e == o || e.msg == o.msg
	}
	return false
}

// As is a shortcut to the standard lib errors.As
func As(err error, target interface{}) bool {
	return stderr.As(err, target)
}

// Is is a shortcut to the standard lib errors.Is
func Is(err, target error) bool {
	return stderr.Is(err, target)
}
