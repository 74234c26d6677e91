// Package authn implements phone-based authentication challenges and
// credential login: one-time codes with TTL stored in a cache, existence
// preconditions per operation, and token issuance after a password check.
package authn

import (
	"strings"

	"account-service/internal/apperr"
)

// OperationType identifies the business operation a challenge protects.
type OperationType string

const (
	OperationCreateUser    OperationType = "CREATE_USER"
	OperationResetPassword OperationType = "RESET_PASSWORD"
)

// ExistencePrecondition states whether a user record must, must not, or may
// optionally exist for an operation type to proceed.
type ExistencePrecondition int

const (
	ExistenceAny ExistencePrecondition = iota
	ExistenceMustExist
	ExistenceMustNotExist
)

// Precondition returns the existence rule bound to the operation type.
// Registration requires no prior account; a password reset requires one.
func (t OperationType) Precondition() ExistencePrecondition {
	switch t {
	case OperationCreateUser:
		return ExistenceMustNotExist
	case OperationResetPassword:
		return ExistenceMustExist
	default:
		return ExistenceAny
	}
}

// ParseOperationType parses a client-supplied operation type,
// case-insensitively. Unknown values fail with COMMON_INVALID_PARAMETER.
func ParseOperationType(s string) (OperationType, error) {
	switch OperationType(strings.ToUpper(strings.TrimSpace(s))) {
	case OperationCreateUser:
		return OperationCreateUser, nil
	case OperationResetPassword:
		return OperationResetPassword, nil
	default:
		return "", apperr.Newf(apperr.CodeInvalidParameter, "unknown authentication type %q", s)
	}
}

// ChallengeKey builds the cache key for a challenge. The format is fixed
// for interop: api:authentication:{operation_type_lowercase}:{phoneNumber}.
func ChallengeKey(t OperationType, phoneNumber string) string {
	return "api:authentication:" + strings.ToLower(string(t)) + ":" + phoneNumber
}
