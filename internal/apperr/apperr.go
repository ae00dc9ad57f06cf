package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Kind int

const (
	KindUnauthenticated Kind = iota + 1
	KindBadRequest
	KindForbidden
	KindNotFound
	KindPartial
	KindInternal
)

// Error carries a short user-facing message plus the wrapped cause.
// Only Msg is ever serialized to a client.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func Unauthenticated(msg string) *Error { return New(KindUnauthenticated, msg) }
func BadRequest(msg string) *Error      { return New(KindBadRequest, msg) }
func Forbidden(msg string) *Error       { return New(KindForbidden, msg) }
func NotFound(msg string) *Error        { return New(KindNotFound, msg) }
func Partial(msg string) *Error         { return New(KindPartial, msg) }

func Internal(msg string, err error) *Error {
	return Wrap(KindInternal, msg, err)
}

// KindOf reports the taxonomy kind of err, defaulting to Internal for
// anything that is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Status maps the taxonomy to HTTP status codes.
func Status(err error) int {
	switch KindOf(err) {
	case KindUnauthenticated:
		return fiber.StatusUnauthorized
	case KindBadRequest:
		return fiber.StatusBadRequest
	case KindForbidden:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	case KindPartial:
		return fiber.StatusMultiStatus
	default:
		return fiber.StatusInternalServerError
	}
}

// Message returns the user-facing message for err without leaking the
// wrapped cause of internal errors.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return "An unexpected error occurred"
}
