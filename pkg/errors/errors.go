package errors

import (
	"fmt"
	"net/http"
)

// Common application errors
var (
	// ErrUnauthenticated is returned when a protected operation is invoked
	// without a valid identity token.
	ErrUnauthenticated = NewUnauthenticatedError("authentication required")

	// ErrAuthenticationFailed is returned on login when the credentials do not
	// match. The same value covers both "no such user" and "wrong password" so
	// callers cannot tell which field was wrong.
	ErrAuthenticationFailed = NewAuthenticationFailedError()
)

// HTTPStatuser is implemented by errors that map to an HTTP status code.
type HTTPStatuser interface {
	HTTPStatus() int
}

// UnauthenticatedError signals a missing, malformed, or expired identity token.
type UnauthenticatedError struct {
	Message string
}

// NewUnauthenticatedError creates a new unauthenticated error
func NewUnauthenticatedError(message string) *UnauthenticatedError {
	return &UnauthenticatedError{Message: message}
}

// Error implements the error interface
func (e *UnauthenticatedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthenticated"
}

// HTTPStatus returns the HTTP status for this error
func (e *UnauthenticatedError) HTTPStatus() int {
	return http.StatusUnauthorized
}

// AuthenticationFailedError signals a login credential mismatch.
type AuthenticationFailedError struct{}

// NewAuthenticationFailedError creates a new authentication failed error
func NewAuthenticationFailedError() *AuthenticationFailedError {
	return &AuthenticationFailedError{}
}

// Error implements the error interface
func (e *AuthenticationFailedError) Error() string {
	return "incorrect credentials"
}

// HTTPStatus returns the HTTP status for this error
func (e *AuthenticationFailedError) HTTPStatus() int {
	return http.StatusUnauthorized
}

// ValidationError represents a validation failure with field-level details.
// Duplicate unique fields on registration are reported as validation errors.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// HTTPStatus returns the HTTP status for this error
func (e *ValidationError) HTTPStatus() int {
	return http.StatusBadRequest
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// HTTPStatus returns the HTTP status for this error
func (e *NotFoundError) HTTPStatus() int {
	return http.StatusNotFound
}

// InternalError represents an internal server error with context
type InternalError struct {
	Message string
	Err     error
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *InternalError {
	return &InternalError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *InternalError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status for this error
func (e *InternalError) HTTPStatus() int {
	return http.StatusInternalServerError
}
