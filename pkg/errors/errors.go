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
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Configuration errors
	ErrConfigLoad     ErrorCode = "CONFIG_LOAD"
	ErrConfigParse    ErrorCode = "CONFIG_PARSE"
	ErrConfigValid    ErrorCode = "CONFIG_INVALID"
	ErrConfigTooLarge ErrorCode = "CONFIG_TOO_LARGE"
	ErrConfigAnchor   ErrorCode = "CONFIG_ANCHOR"
	ErrConfigUnsafe   ErrorCode = "CONFIG_UNSAFE"
	ErrConfigDepth    ErrorCode = "CONFIG_DEPTH"
	ErrConfigSave     ErrorCode = "CONFIG_SAVE"

	// Template errors
	ErrTemplateInvalid ErrorCode = "TEMPLATE_INVALID"
	ErrContextInvalid  ErrorCode = "CONTEXT_INVALID"

	// Project metadata errors
	ErrQualityLevel ErrorCode = "QUALITY_LEVEL_INVALID"
	ErrProjectType  ErrorCode = "PROJECT_TYPE_INVALID"
	ErrAssistant    ErrorCode = "ASSISTANT_INVALID"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
)

// NimataError represents a structured error with code and details
type NimataError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *NimataError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *NimataError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *NimataError) Is(target error) bool {
	var targetErr *NimataError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new NimataError with the given code and message
func New(code ErrorCode, message string) *NimataError {
	return &NimataError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new NimataError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *NimataError {
	return &NimataError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a NimataError
func Wrap(err error, code ErrorCode, message string) *NimataError {
	if err == nil {
		return nil
	}
	return &NimataError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *NimataError {
	if err == nil {
		return nil
	}
	return &NimataError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *NimataError) WithDetail(key string, value interface{}) *NimataError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *NimataError) WithDetails(details map[string]interface{}) *NimataError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var nimataErr *NimataError
	if errors.As(err, &nimataErr) {
		return nimataErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a NimataError
func GetErrorCode(err error) ErrorCode {
	var nimataErr *NimataError
	if errors.As(err, &nimataErr) {
		return nimataErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a NimataError
func GetErrorDetails(err error) map[string]interface{} {
	var nimataErr *NimataError
	if errors.As(err, &nimataErr) {
		return nimataErr.Details
	}
	return nil
}
