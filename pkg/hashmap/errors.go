package hashmap

import (
	"errors"
	"fmt"
)

// Error is a coded error returned by the strict accessors of Map.
//
// Two Errors match under errors.Is when their codes are equal, so details
// attached with WithDetails do not affect comparison against the sentinels.
type Error struct {
	Code    string // Error code (e.g., "CM-KEY-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError creates a new Error with the given code and message.
func NewError(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *Error) WithDetails(details string) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *Error) WithCause(cause error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// ErrorCode extracts the code from err if it is (or wraps) an *Error.
func ErrorCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

var (
	// ErrKeyNotFound indicates a strict lookup on a key that is not stored.
	ErrKeyNotFound = NewError("CM-KEY-4040", "key not found")

	// ErrInvalidKey indicates an erase of a key that is not stored, under
	// a policy that treats it as a caller error.
	ErrInvalidKey = NewError("CM-KEY-4001", "invalid key")

	// ErrLengthMismatch indicates paired key/value sequences of different lengths.
	ErrLengthMismatch = NewError("CM-ARG-4000", "keys and values differ in length")
)

// keyDetails renders a key for error details.
func keyDetails(key any) string {
	return fmt.Sprintf("key=%v", key)
}

func lengthDetails(keys, values int) string {
	return fmt.Sprintf("keys=%d values=%d", keys, values)
}
