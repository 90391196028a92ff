package pylon

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes caller-visible failures.
type ErrorKind string

const (
	// ErrValidation means the request was rejected before any network I/O.
	ErrValidation ErrorKind = "validation"
	// ErrTransport covers network failures and timeouts.
	ErrTransport ErrorKind = "transport"
	// ErrDecode means an expected-JSON body failed to parse.
	ErrDecode ErrorKind = "decode"
	// ErrUnknown is the catch-all for unexpected failures.
	ErrUnknown ErrorKind = "unknown"
)

// Error is the failure type returned by Client.Call. It always carries a
// human-readable message; the underlying cause, if any, is unwrappable.
type Error struct {
	ErrKind ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the error category, ErrUnknown for foreign errors.
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.ErrKind
	}
	return ErrUnknown
}

func validationError(format string, args ...any) *Error {
	return &Error{ErrKind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func transportError(msg string, cause error) *Error {
	return &Error{ErrKind: ErrTransport, Message: msg, Err: cause}
}

func decodeError(msg string, cause error) *Error {
	return &Error{ErrKind: ErrDecode, Message: msg, Err: cause}
}
