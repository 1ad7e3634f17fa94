package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown  ErrorCode = "UNKNOWN"
	ErrInternal ErrorCode = "INTERNAL"

	// Configuration errors
	ErrConfigLoad     ErrorCode = "CONFIG_LOAD"
	ErrConfigSave     ErrorCode = "CONFIG_SAVE"
	ErrConfigConflict ErrorCode = "CONFIG_CONFLICT"

	// Command execution errors
	ErrCommandFailed   ErrorCode = "COMMAND_FAILED"
	ErrCommandNotFound ErrorCode = "COMMAND_NOT_FOUND"

	// Fleet errors
	ErrDiscovery     ErrorCode = "DISCOVERY"
	ErrTargetInvalid ErrorCode = "TARGET_INVALID"
)

// UpdaterError represents a structured error with code and details
type UpdaterError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *UpdaterError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *UpdaterError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *UpdaterError) Is(target error) bool {
	var targetErr *UpdaterError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new UpdaterError with the given code and message
func New(code ErrorCode, message string) *UpdaterError {
	return &UpdaterError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new UpdaterError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *UpdaterError {
	return &UpdaterError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an UpdaterError
func Wrap(err error, code ErrorCode, message string) *UpdaterError {
	if err == nil {
		return nil
	}
	return &UpdaterError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *UpdaterError {
	if err == nil {
		return nil
	}
	return &UpdaterError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *UpdaterError) WithDetail(key string, value interface{}) *UpdaterError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var updaterErr *UpdaterError
	if errors.As(err, &updaterErr) {
		return updaterErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an UpdaterError
func GetErrorCode(err error) ErrorCode {
	var updaterErr *UpdaterError
	if errors.As(err, &updaterErr) {
		return updaterErr.Code
	}
	return ErrUnknown
}
