// Package errors defines the coded error type shared by the CLI and the
// HTTP server.
//
// Every failure that reaches a user carries a [Code] so callers can
// branch on the category without parsing message text, and so the server
// can map it to an HTTP status. Validation failures use the INVALID_*
// family, missing resources the *_NOT_FOUND family, and archive storage
// failures STORE_ERROR.
//
//	err := errors.New(errors.ErrCodeInvalidLevel, "level must not be negative: %d", level)
//	if errors.Is(err, errors.ErrCodeInvalidLevel) { ... }
//
// Wrapping keeps the cause reachable through the standard errors chain:
//
//	err := errors.Wrap(errors.ErrCodeStore, cause, "archive level %d", level)
package errors

import (
	"errors"
	"fmt"
)

// Code identifies an error category. Codes are stable strings; the
// server returns them verbatim in JSON error bodies.
type Code string

const (
	// Validation failures.
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidLevel   Code = "INVALID_LEVEL"
	ErrCodeInvalidParam   Code = "INVALID_PARAM"
	ErrCodeInvalidMap     Code = "INVALID_MAP"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle   Code = "INVALID_STYLE"
	ErrCodeInvalidVizType Code = "INVALID_VIZ_TYPE"
	ErrCodeInvalidFigure  Code = "INVALID_FIGURE"
	ErrCodeInvalidPath    Code = "INVALID_PATH"

	// Missing resources.
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"
	ErrCodeEntryNotFound Code = "ENTRY_NOT_FOUND"

	// Archive storage.
	ErrCodeStore   Code = "STORE_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	// Everything else.
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a coded error with an optional underlying cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	s := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error that records cause in its chain.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// Is reports whether err (or anything it wraps) carries code.
func Is(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// GetCode returns the code carried by err, or "" for uncoded errors.
func GetCode(err error) Code {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Code
}

// UserMessage returns the message without the code prefix. Uncoded
// errors pass through unchanged.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	return e.Message
}
