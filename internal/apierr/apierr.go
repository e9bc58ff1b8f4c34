// Package apierr carries the error taxonomy shared by the service and
// transport layers. Every failure a handler can see is tagged with a Kind;
// the transport layer owns the single mapping from Kind to HTTP status.
package apierr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// Internal is the zero value so untagged errors fall through to it.
	Internal Kind = iota
	NotFound
	Unauthorized
	ServiceUnavailable
	BadRequest
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case Unauthorized:
		return "unauthorized"
	case ServiceUnavailable:
		return "service unavailable"
	case BadRequest:
		return "bad request"
	default:
		return "internal"
	}
}

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

// New returns a tagged error with the given message.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf is New with formatting.
func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap tags an underlying error. A nil err returns nil.
func Wrap(kind Kind, msg string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf reports the Kind of err. Untagged errors are Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Message returns the tagged message, or a generic one for untagged errors so
// internal detail never reaches a client.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != Internal {
		return e.Msg
	}
	return "internal server error"
}
