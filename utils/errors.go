package utils

import (
	"fmt"
	"net/http"
)

// AppError represents an application error with the HTTP status it maps to.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ValidationErr creates a 400 Bad Request error for malformed input
func ValidationErr(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, nil)
}

// ConflictErr creates a 409 Conflict error for state that rejects the request
// as-is (insufficient stock or balance, usage limit reached, duplicate action)
func ConflictErr(message string) *AppError {
	return NewAppError(http.StatusConflict, message, nil)
}

// NotFoundErr creates a 404 Not Found error
func NotFoundErr(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, nil)
}

// ForbiddenErr creates a 403 Forbidden error
func ForbiddenErr(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, nil)
}

// GetAppError returns the AppError if the error is an AppError
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return nil
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
