package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies an Error so the HTTP boundary can pick a status code
// without inspecting message text.
type Kind int

const (
	KindBadValues Kind = iota + 1
	KindNotAllowed
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindBadValues:
		return "bad_values"
	case KindNotAllowed:
		return "not_allowed"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error is the tagged error variant raised by services. Messages are
// human-readable; formatting of ids into usernames happens at the
// controller layer, not here.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is makes two Errors of the same Kind match under errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && (t.Message == "" || t.Message == e.Message)
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func NotAllowed(format string, args ...any) *Error {
	return &Error{Kind: KindNotAllowed, Message: fmt.Sprintf(format, args...)}
}

func BadValues(format string, args ...any) *Error {
	return &Error{Kind: KindBadValues, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// StatusCode maps an error to the HTTP status the route boundary should
// respond with.
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindBadValues:
		return fiber.StatusBadRequest
	case KindNotAllowed:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	}
	if e, ok := err.(*fiber.Error); ok {
		return e.Code
	}
	return fiber.StatusInternalServerError
}
