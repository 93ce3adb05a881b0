package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unified error code across the module.
type ErrorCode string

// Request / configuration error codes
const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST"
	ErrInvalidConfig  ErrorCode = "INVALID_CONFIG"
)

// Host error codes
const (
	ErrHostUnavailable ErrorCode = "HOST_UNAVAILABLE"
	ErrTransformFailed ErrorCode = "TRANSFORM_FAILED"
	ErrTimeout         ErrorCode = "TIMEOUT"
)

// Output error codes
const (
	ErrManifestWrite ErrorCode = "MANIFEST_WRITE"
)

// Error represents a structured error with code, message, and metadata.
type Error struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Retryable bool      `json:"retryable"`
	Host      string    `json:"host,omitempty"`
	Cause     error     `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithCause adds a cause to the error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithRetryable marks the error as retryable.
func (e *Error) WithRetryable(retryable bool) *Error {
	e.Retryable = retryable
	return e
}

// WithHost sets the host name that produced the error.
func (e *Error) WithHost(host string) *Error {
	e.Host = host
	return e
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Retryable
	}
	return false
}

// GetErrorCode extracts the error code from an error chain.
func GetErrorCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsCode reports whether any error in err's chain carries code.
func IsCode(err error, code ErrorCode) bool {
	return err != nil && GetErrorCode(err) == code
}

// NewInvalidConfigError creates an INVALID_CONFIG error.
func NewInvalidConfigError(message string) *Error {
	return NewError(ErrInvalidConfig, message)
}

// NewTransformError wraps a failed host transform.
func NewTransformError(host string, cause error) *Error {
	return NewError(ErrTransformFailed, "host transform failed").WithHost(host).WithCause(cause)
}
