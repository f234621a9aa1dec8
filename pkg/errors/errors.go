// pkg/errors/errors.go
package apperrors

import (
	"errors"
	"fmt"
)

// Error types
const (
	ErrValidation         = "VALIDATION_ERROR"
	ErrNotFound           = "NOT_FOUND"
	ErrAccountNotFound    = "ACCOUNT_NOT_FOUND"
	ErrAccountExists      = "ACCOUNT_ALREADY_EXISTS"
	ErrAccountDisabled    = "ACCOUNT_DISABLED"
	ErrQuotaExceeded      = "QUOTA_EXCEEDED"
	ErrInvariantViolation = "INVARIANT_VIOLATION"
	ErrUnauthorized       = "UNAUTHORIZED"
	ErrForbidden          = "FORBIDDEN"
	ErrConflict           = "CONFLICT"
	ErrInternalServer     = "INTERNAL_SERVER_ERROR"
	ErrBadRequest         = "BAD_REQUEST"
)

// AppError represents a custom application error
type AppError struct {
	Type       string `json:"type"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s - %s", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// NewAppError creates a new AppError
func NewAppError(errorType string, statusCode int, message string, details ...string) *AppError {
	var detail string
	if len(details) > 0 {
		detail = details[0]
	}

	return &AppError{
		Type:       errorType,
		StatusCode: statusCode,
		Message:    message,
		Details:    detail,
	}
}

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errorType string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// GetErrorType extracts the error type from an error
func GetErrorType(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// GetStatusCode extracts the status code from an error
func GetStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return 500 // Default to internal server error
}

// Helper functions to create common errors
func NewAccountNotFoundError() *AppError {
	return NewAppError(ErrAccountNotFound, 404, "Account not found")
}

func NewAccountExistsError() *AppError {
	return NewAppError(ErrAccountExists, 409, "Account already exists")
}

func NewAccountDisabledError() *AppError {
	return NewAppError(ErrAccountDisabled, 403, "Account is deactivated")
}

// NewQuotaExceededError carries a policy decision's reason to the client.
func NewQuotaExceededError(reason string) *AppError {
	return NewAppError(ErrQuotaExceeded, 429, reason)
}

// NewConflictError signals a concurrent-write race on the account document.
// Callers retry the whole read-check-act-record sequence from a fresh
// snapshot.
func NewConflictError() *AppError {
	return NewAppError(ErrConflict, 409, "Account was modified concurrently")
}

// NewInvariantViolationError reports corrupt input rejected at the ledger
// boundary.
func NewInvariantViolationError(details string) *AppError {
	return NewAppError(ErrInvariantViolation, 422, "Invalid usage record", details)
}

func NewUnauthorizedError(message string) *AppError {
	return NewAppError(ErrUnauthorized, 401, message)
}

func NewForbiddenError(message string) *AppError {
	return NewAppError(ErrForbidden, 403, message)
}
