package biz

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// CodeUnexpected marks an error recorded from a non-domain fault.
	CodeUnexpected = "unexpected"
	// CodeNil marks the error recorded by EnsureNotNil for a nil value.
	CodeNil = "nil_value"
)

// Error is a business-rule violation. It is immutable once created.
type Error struct {
	id        uuid.UUID
	message   string
	code      string
	createdAt time.Time
}

func NewError(message string) *Error {
	return newError(message, "", time.Now().UTC())
}

func NewErrorWithCode(message, code string) *Error {
	return newError(message, code, time.Now().UTC())
}

// CopyError keeps message and code of other; id and timestamp are new.
func CopyError(other *Error) *Error {
	if other == nil {
		return nil
	}
	return NewErrorWithCode(other.message, other.code)
}

func newError(message, code string, at time.Time) *Error {
	return &Error{
		id:        uuid.New(),
		message:   message,
		code:      code,
		createdAt: at,
	}
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Message() string {
	return e.message
}

func (e *Error) Code() string {
	return e.code
}

// CreatedAt time creation (UTC)
func (e *Error) CreatedAt() time.Time {
	return e.createdAt
}

func (e *Error) ID() uuid.UUID {
	return e.id
}

// Is matches by code when both sides carry one, by message otherwise.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	if e.code != "" && t.code != "" {
		return e.code == t.code
	}
	return e.message == t.message
}

// AsError reports whether err is, or wraps, a domain error.
func AsError(err error) (*Error, bool) {
	var derr *Error
	if errors.As(err, &derr) && derr != nil {
		return derr, true
	}
	return nil, false
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
