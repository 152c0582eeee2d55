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
	ErrUnknown         ErrorCode = "UNKNOWN"
	ErrInternal        ErrorCode = "INTERNAL"
	ErrInvalidArgument ErrorCode = "INVALID_ARGUMENT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Markup errors
	ErrMarkupParse ErrorCode = "MARKUP_PARSE"
	ErrMarkupWrite ErrorCode = "MARKUP_WRITE"

	// Ruleset errors
	ErrRulesetParse ErrorCode = "RULESET_PARSE"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
)

// PricingError represents a structured error with code and details
type PricingError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PricingError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PricingError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface. Two pricing errors match when their
// codes match.
func (e *PricingError) Is(target error) bool {
	var targetErr *PricingError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PricingError with the given code and message
func New(code ErrorCode, message string) *PricingError {
	return &PricingError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PricingError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PricingError {
	return &PricingError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// InvalidArgument is shorthand for New(ErrInvalidArgument, message), the
// kind every precondition violation in the model packages uses.
func InvalidArgument(message string) *PricingError {
	return New(ErrInvalidArgument, message)
}

// Wrap wraps an existing error with a PricingError
func Wrap(err error, code ErrorCode, message string) *PricingError {
	if err == nil {
		return nil
	}
	return &PricingError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PricingError {
	if err == nil {
		return nil
	}
	return &PricingError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PricingError) WithDetail(key string, value interface{}) *PricingError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *PricingError) WithDetails(details map[string]interface{}) *PricingError {
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
	var pricingErr *PricingError
	if errors.As(err, &pricingErr) {
		return pricingErr.Code == code
	}
	return false
}

// IsInvalidArgument reports whether err carries ErrInvalidArgument anywhere
// in its chain.
func IsInvalidArgument(err error) bool {
	for err != nil {
		var pricingErr *PricingError
		if !errors.As(err, &pricingErr) {
			return false
		}
		if pricingErr.Code == ErrInvalidArgument {
			return true
		}
		err = pricingErr.Wrapped
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PricingError
func GetErrorCode(err error) ErrorCode {
	var pricingErr *PricingError
	if errors.As(err, &pricingErr) {
		return pricingErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PricingError
func GetErrorDetails(err error) map[string]interface{} {
	var pricingErr *PricingError
	if errors.As(err, &pricingErr) {
		return pricingErr.Details
	}
	return nil
}
