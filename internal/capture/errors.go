package capture

import (
	"errors"
	"fmt"
)

// Kind classifies a failure at the tool boundary.
type Kind int

const (
	// KindInternal covers native, filesystem and missing-resource failures.
	KindInternal Kind = iota
	// KindInvalidRequest means the caller's input is malformed or out of range.
	KindInvalidRequest
)

func (k Kind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid_request"
	default:
		return "internal"
	}
}

// Error is a normalized tool failure. Its message is safe to show to the caller.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// InvalidRequest returns an Error of kind KindInvalidRequest.
func InvalidRequest(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidRequest, Message: fmt.Sprintf(format, args...)}
}

// Internal returns an Error of kind KindInternal.
func Internal(format string, args ...any) *Error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf(format, args...)}
}

// Normalize maps any error onto an *Error. Errors that already carry a kind
// are returned unchanged; anything else becomes KindInternal with the message
// "<prefix>: <err>", or "<prefix>: Unknown error" when err has no message.
func Normalize(err error, prefix string) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindInternal, Message: prefix + ": " + messageOf(err), Err: err}
}

// KindOf returns the kind of err, KindInternal if it was never normalized.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// panicValue carries a recovered panic value that is not an error.
type panicValue struct{ value any }

func (p panicValue) Error() string { return "" }

// FromPanic converts a recovered panic value into an error.
func FromPanic(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return panicValue{value: r}
}

func messageOf(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "Unknown error"
}
