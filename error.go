package shopinsight

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL   = "internal"
	EINVALID    = "invalid"
	ENOTFOUND   = "not_found"
	EEXTRACTION = "extraction_failed"

	// EUNREACHABLE is returned when a store's main page cannot be fetched.
	// Callers usually present it the same way as ENOTFOUND since the most
	// common cause is a wrong or dead URL.
	EUNREACHABLE = "unreachable"
)

// Error represents an application-specific error. Err holds the underlying
// cause, if any, and is exposed through Unwrap.
type Error struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError returns an Error with the given code and message that wraps err.
func WrapError(code string, err error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}
