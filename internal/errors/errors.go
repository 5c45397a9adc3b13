// Package errors defines the coded error taxonomy shared by the class finder.
//
// Every failure that reaches a caller carries a Code so that the MCP layer
// and the CLI can render a structured status + message instead of a raw Go
// error chain. Per-candidate failures (ARCHIVE_UNREADABLE, DECOMPILE_FAILURE)
// are normally downgraded by the finder and resolver; TOOLCHAIN_MISSING and
// UPSTREAM_QUERY_FAILURE abort the whole request.
//
//	err := errors.Wrap(errors.ErrCodeArchiveUnreadable, cause, "open %s", path)
//	if errors.Is(err, errors.ErrCodeArchiveUnreadable) {
//	    // skip the archive
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

const (
	ErrCodeNotFound          Code = "NOT_FOUND"
	ErrCodeArchiveUnreadable Code = "ARCHIVE_UNREADABLE"
	ErrCodeToolchainMissing  Code = "TOOLCHAIN_MISSING"
	ErrCodeDecompileFailure  Code = "DECOMPILE_FAILURE"
	ErrCodeUpstreamQuery     Code = "UPSTREAM_QUERY_FAILURE"
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInternal          Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code, an optional cause and an optional
// remediation hint.
type Error struct {
	Code    Code
	Message string
	Cause   error
	Hint    string
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithHint returns e with a remediation hint attached.
func (e *Error) WithHint(hint string) *Error {
	e.Hint = hint
	return e
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code anywhere in its chain.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from err, or "" if err is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage renders err for display: "CODE: message (cause)" plus the hint
// on its own line when one is present. Non-coded errors are returned as-is.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (%v)", msg, e.Cause)
	}
	if e.Hint != "" {
		msg += "\nhint: " + e.Hint
	}
	return msg
}
