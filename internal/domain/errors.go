package domain

import "errors"

// Error kinds. Handlers translate each into a fixed HTTP status; anything else is internal.
var (
	ErrBadRequest      = errors.New("bad request")
	ErrUnauthenticated = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
)

// Error carries a caller-safe message alongside its kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func BadRequest(msg string) error { return &Error{Kind: ErrBadRequest, Message: msg} }

func Unauthenticated(msg string) error { return &Error{Kind: ErrUnauthenticated, Message: msg} }

func Forbidden(msg string) error { return &Error{Kind: ErrForbidden, Message: msg} }

func NotFound(msg string) error { return &Error{Kind: ErrNotFound, Message: msg} }

func Conflict(msg string) error { return &Error{Kind: ErrConflict, Message: msg} }
