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

// Predefined errors.
//
// Missing features during condition evaluation and empty signal lists fed to
// the simulator are deliberately not represented here: the former evaluates
// to false and the latter yields a zero-valued result.
var (
	// Rule definition file errors (recovered locally, rule set left unchanged)
	ErrRuleFileInvalid = &Error{Code: "RULE_FILE_INVALID", Message: "rule definition file invalid"}

	// Data errors
	ErrNoData           = &Error{Code: "NO_DATA", Message: "no data available"}
	ErrInsufficientData = &Error{Code: "INSUFFICIENT_DATA", Message: "insufficient data for analysis"}
	ErrUnorderedBars    = &Error{Code: "UNORDERED_BARS", Message: "bars not in chronological order"}

	// Programmer errors (fail fast at construction time)
	ErrInvalidParams = &Error{Code: "INVALID_PARAMS", Message: "invalid parameters"}
	ErrInvalidRule   = &Error{Code: "INVALID_RULE", Message: "invalid rule definition"}
	ErrUnknownMetric = &Error{Code: "UNKNOWN_METRIC", Message: "unknown optimization metric"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}

	// Storage errors
	ErrSignalNotFound = &Error{Code: "SIGNAL_NOT_FOUND", Message: "signal not found"}
)
