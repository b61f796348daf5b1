// Package apperr defines the closed error taxonomy used by the client.
package apperr

import (
	"errors"
	"fmt"
)

// Code identifies the kind of a domain error.
type Code string

const (
	// CodeInvalidCredentials indicates neither the remote endpoint nor the
	// local credential store accepted the supplied username/password.
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"

	// CodeDuplicateUser indicates a registration collided with an existing
	// record's username or email.
	CodeDuplicateUser Code = "DUPLICATE_USER"

	// CodeNoActiveSession indicates an operation that needs a logged-in
	// user was called without one.
	CodeNoActiveSession Code = "NO_ACTIVE_SESSION"

	// CodeNotAvailable indicates the operation is unsupported for this
	// account type (e.g. password change on a remote demo account).
	CodeNotAvailable Code = "NOT_AVAILABLE"

	// CodeWeakPassword indicates the new password failed the policy.
	CodeWeakPassword Code = "WEAK_PASSWORD"

	// CodeMismatch indicates the new password and its confirmation differ.
	CodeMismatch Code = "MISMATCH"

	// CodeWrongPassword indicates the supplied current password does not
	// match the stored one.
	CodeWrongPassword Code = "WRONG_PASSWORD"

	// CodeTransport indicates a network or remote API failure that could
	// not be recovered locally.
	CodeTransport Code = "TRANSPORT"
)

// Error is a domain error with a code from the closed set above.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// CodeOf returns the code of err, or "" when err is not a domain error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
