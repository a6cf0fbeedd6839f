package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeAuthFailure indicates the server rejected the supplied credentials.
	ErrCodeAuthFailure ErrorCode = "auth_failure"
	// ErrCodeMalformedCredential indicates a credential whose payload could not be decoded.
	ErrCodeMalformedCredential ErrorCode = "malformed_credential"
	// ErrCodeConflict indicates the server refused a duplicate (e.g., a second vote).
	ErrCodeConflict ErrorCode = "conflict"
	// ErrCodeRejected indicates any other non-success server response.
	ErrCodeRejected ErrorCode = "rejected"
	// ErrCodeUnavailable indicates the request never completed (network failure).
	ErrCodeUnavailable ErrorCode = "unavailable"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeUnauthenticated indicates an operation that needs a session was attempted without one.
	ErrCodeUnauthenticated ErrorCode = "unauthenticated"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeInternal indicates a local failure (storage, encoding).
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout indicates a timeout occurred.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates the operation was canceled.
	ErrCodeCanceled ErrorCode = "canceled"
)

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the specific field that caused the error (optional, for validation errors)
	Field string
	// Status is the HTTP status returned by the server, if any.
	Status int
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Retryable reports whether the same request may succeed if repeated.
func (e *AppError) Retryable() bool {
	switch e.Code {
	case ErrCodeRejected, ErrCodeUnavailable, ErrCodeTimeout:
		return true
	default:
		return false
	}
}

// AuthFailure creates a new AuthFailure error.
func AuthFailure(message string) *AppError {
	return &AppError{
		Code:    ErrCodeAuthFailure,
		Message: message,
	}
}

// MalformedCredential wraps a credential decoding failure.
func MalformedCredential(cause error) *AppError {
	return &AppError{
		Code:    ErrCodeMalformedCredential,
		Message: "malformed credential",
		Cause:   cause,
	}
}

// Conflict creates a new Conflict error.
func Conflict(message string) *AppError {
	return &AppError{
		Code:    ErrCodeConflict,
		Message: message,
	}
}

// Rejected creates an error for a non-success server response.
func Rejected(status int, message string) *AppError {
	return &AppError{
		Code:    ErrCodeRejected,
		Message: message,
		Status:  status,
	}
}

// Unavailable wraps a transport failure.
func Unavailable(cause error) *AppError {
	return &AppError{
		Code:    ErrCodeUnavailable,
		Message: "server unavailable",
		Cause:   cause,
	}
}

// Unauthenticated creates a new Unauthenticated error.
func Unauthenticated(message string) *AppError {
	return &AppError{
		Code:    ErrCodeUnauthenticated,
		Message: message,
	}
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: message,
	}
}

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf(format, args...),
	}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

// Validationf creates a new Validation error with formatted message.
func Validationf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Field:   field,
	}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsAuthFailure checks if an error is an AuthFailure error.
func IsAuthFailure(err error) bool {
	return isCode(err, ErrCodeAuthFailure)
}

// IsMalformedCredential checks if an error is a MalformedCredential error.
func IsMalformedCredential(err error) bool {
	return isCode(err, ErrCodeMalformedCredential)
}

// IsConflict checks if an error is a Conflict error.
func IsConflict(err error) bool {
	return isCode(err, ErrCodeConflict)
}

// IsRejected checks if an error is a Rejected error.
func IsRejected(err error) bool {
	return isCode(err, ErrCodeRejected)
}

// IsUnavailable checks if an error is an Unavailable error.
func IsUnavailable(err error) bool {
	return isCode(err, ErrCodeUnavailable)
}

// IsUnauthenticated checks if an error is an Unauthenticated error.
func IsUnauthenticated(err error) bool {
	return isCode(err, ErrCodeUnauthenticated)
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool {
	return isCode(err, ErrCodeNotFound)
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsInternal checks if an error is an Internal error.
func IsInternal(err error) bool {
	return isCode(err, ErrCodeInternal)
}

// IsTimeout checks if an error is a Timeout error.
func IsTimeout(err error) bool {
	return isCode(err, ErrCodeTimeout)
}

// IsCanceled checks if an error is a Canceled error.
func IsCanceled(err error) bool {
	return isCode(err, ErrCodeCanceled)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}

// GetStatus returns the first HTTP status found in the error chain, or 0.
func GetStatus(err error) int {
	for err != nil {
		var appErr *AppError
		if !errors.As(err, &appErr) {
			return 0
		}
		if appErr.Status != 0 {
			return appErr.Status
		}
		err = appErr.Cause
	}
	return 0
}
