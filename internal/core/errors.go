// internal/core/errors.go
package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Wrapf creates a new error with the same code and a formatted message.
func Wrapf(base *Error, format string, args ...any) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message + ": " + fmt.Sprintf(format, args...),
	}
}

// Predefined errors
var (
	// Series errors
	ErrNoData          = &Error{Code: "NO_DATA", Message: "no data available"}
	ErrMalformedSeries = &Error{Code: "MALFORMED_SERIES", Message: "series failed validation"}
	ErrUnknownColumn   = &Error{Code: "UNKNOWN_COLUMN", Message: "indicator column not present"}

	// Discovery errors
	ErrInvalidParams = &Error{Code: "INVALID_PARAMS", Message: "invalid discovery parameters"}
	ErrNoSignals     = &Error{Code: "NO_SIGNALS", Message: "no signals to evaluate"}
	ErrEmptyCatalog  = &Error{Code: "EMPTY_CATALOG", Message: "pattern catalog is empty"}

	// Collector errors
	ErrFetchFailed   = &Error{Code: "FETCH_FAILED", Message: "data fetch failed"}
	ErrSymbolInvalid = &Error{Code: "SYMBOL_INVALID", Message: "symbol failed validation"}

	// Store errors
	ErrNotFound    = &Error{Code: "NOT_FOUND", Message: "object not found"}
	ErrStoreFailed = &Error{Code: "STORE_FAILED", Message: "storage operation failed"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}

	// LLM errors
	ErrLLMFailed = &Error{Code: "LLM_FAILED", Message: "LLM request failed"}
)
