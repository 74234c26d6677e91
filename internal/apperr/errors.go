// Package apperr defines the typed, user-facing error taxonomy shared by all
// service layers. Handlers translate these into HTTP responses; inner layers
// never format responses themselves.
package apperr

import (
	"errors"
	"fmt"
)

// Code is a stable, client-visible error code.
type Code string

const (
	CodeInvalidParameter    Code = "COMMON_INVALID_PARAMETER"
	CodeInvalidToken        Code = "COMMON_INVALID_TOKEN"
	CodeSystemError         Code = "COMMON_SYSTEM_ERROR"
	CodeUserNotFound        Code = "USER_NOT_FOUND"
	CodeUserAlreadyExists   Code = "USER_ALREADY_EXISTS"
	CodeRoleNotFound        Code = "ROLE_NOT_FOUND"
	CodeChallengeNotFound   Code = "AUTHENTICATION_NUMBER_NOT_FOUND"
	CodeChallengeMismatch   Code = "AUTHENTICATION_NUMBER_MISMATCHED"
	CodeInvalidCredentials  Code = "INVALID_CREDENTIALS"
)

// Error is a recoverable, user-facing error with a stable code. Two Errors
// match under errors.Is when their codes are equal, so sentinel values below
// can be used as targets regardless of the message.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// New returns an Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf returns an Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Sentinel errors with default messages. Use the constructors above when a
// more specific message is needed; errors.Is still matches by code.
var (
	ErrInvalidParameter   = New(CodeInvalidParameter, "invalid parameter")
	ErrInvalidToken       = New(CodeInvalidToken, "invalid token")
	ErrSystemError        = New(CodeSystemError, "internal error")
	ErrUserNotFound       = New(CodeUserNotFound, "user not found")
	ErrUserAlreadyExists  = New(CodeUserAlreadyExists, "user already exists")
	ErrRoleNotFound       = New(CodeRoleNotFound, "role not found")
	ErrChallengeNotFound  = New(CodeChallengeNotFound, "authentication number not found or expired")
	ErrChallengeMismatch  = New(CodeChallengeMismatch, "authentication number mismatched")
	ErrInvalidCredentials = New(CodeInvalidCredentials, "invalid credentials")
)

// CodeOf returns the code of err if it is (or wraps) an *Error, or
// CodeSystemError otherwise.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeSystemError
}
